package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

// NewRootCommand builds loanctl with every subcommand attached
func NewRootCommand() *cobra.Command {
	logLevel := "warn"
	svc := NewServiceFlags()

	rootCmd := &cobra.Command{
		Use:   "loanctl",
		Short: "Command line client for the loan approval backend",
		Long: `loanctl submits loan applications to the prediction backend,
chats with its assistant and downloads the PDF report of the last prediction.`,
		Version:       Version + " (" + GitCommit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				log.WithError(err).Fatal("cannot parse log-level")
			}
			log.SetLevel(level)
			log.Debug("debug logging enabled")
		},
	}

	rootCmd.AddCommand(
		NewPredictCommand(svc),
		NewChatCommand(svc),
		NewReportCommand(svc),
	)

	svc.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel,
		"Log level (trace,debug,info,warn,error)")

	return rootCmd
}

func main() {
	// Add some millisecond precision to log timestamps
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
	log.SetOutput(os.Stderr)

	if err := NewRootCommand().Execute(); err != nil {
		log.WithError(err).Fatal("could not execute root command")
	}
}
