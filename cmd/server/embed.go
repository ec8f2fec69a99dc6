//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// web/dist is the portal frontend build output, copied in before building with -tags embed
//
//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the portal frontend built into the binary
func setupStaticFiles(router *gin.Engine) {
	log.Info("📦 Using embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		log.Fatalf("Failed to get dist subdirectory: %v", err)
	}
	fileServer := http.FileServer(http.FS(distFS))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}

		// Unknown paths fall back to index.html for client-side routing
		if stat, err := fs.Stat(distFS, name); err != nil || stat.IsDir() {
			c.FileFromFS("/", http.FS(distFS))
			return
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
