package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewReportCommand(svc *ServiceFlags) *cobra.Command {
	output := "Loan_Report.pdf"

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF report of the backend's last prediction",
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := svc.Client().DownloadReport(cmd.Context())
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return errors.Wrapf(err, "couldn't write %s", output)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", len(pdf), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", output, "File to write the report to")

	return cmd
}
