package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"

	"loanportal/internal/config"
	"loanportal/internal/service"
)

// ServiceFlags selects the backend every subcommand talks to
type ServiceFlags struct {
	BaseURL string
	Timeout time.Duration
}

// NewServiceFlags defaults to LOAN_API_BASE_URL and LOAN_API_TIMEOUT
func NewServiceFlags() *ServiceFlags {
	svc := config.LoadService()
	timeout := svc.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ServiceFlags{
		BaseURL: svc.BaseURL,
		Timeout: timeout,
	}
}

func (f *ServiceFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.BaseURL, "base-url", f.BaseURL, "Root URL of the prediction/chat backend")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Timeout for each backend call (0 disables it)")
}

// Client builds a LoanClient from the flags
func (f *ServiceFlags) Client() *service.LoanClient {
	return service.NewLoanClient(&config.ServiceConfig{
		BaseURL: strings.TrimSuffix(f.BaseURL, "/"),
		Timeout: f.Timeout,
	})
}
