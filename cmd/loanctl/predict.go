package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"loanportal/internal/model"
	"loanportal/internal/service"
)

var fieldUsage = map[string]string{
	model.FieldDependents:        "Number of dependents",
	model.FieldIncomeAnnum:       "Annual income",
	model.FieldLoanAmount:        "Requested loan amount",
	model.FieldLoanTerm:          "Loan term",
	model.FieldCibilScore:        "CIBIL credit score",
	model.FieldResidentialAssets: "Residential assets value",
	model.FieldCommercialAssets:  "Commercial assets value",
	model.FieldLuxuryAssets:      "Luxury assets value",
	model.FieldBankAssets:        "Bank asset value",
	model.FieldEducation:         "Education (Graduate, Not Graduate)",
	model.FieldSelfEmployed:      "Self employed (Yes, No)",
}

type PredictFlags struct {
	Values map[string]*string
	Output string
}

func NewPredictFlags() *PredictFlags {
	defaults := model.DefaultPredictionRequest()
	values := make(map[string]*string, len(model.FieldNames))
	for _, name := range model.FieldNames {
		v := defaults[name]
		values[name] = &v
	}
	return &PredictFlags{Values: values}
}

// flagName turns a field name such as income_annum into --income-annum
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func (f *PredictFlags) BindFlags(fs *pflag.FlagSet) {
	for _, name := range model.FieldNames {
		fs.StringVar(f.Values[name], flagName(name), *f.Values[name], fieldUsage[name])
	}
	fs.StringVarP(&f.Output, "output", "o", f.Output, "Output format; available options are 'json' and 'yaml', empty for text")
}

func (f *PredictFlags) Fields() map[string]string {
	out := make(map[string]string, len(f.Values))
	for name, v := range f.Values {
		out[name] = *v
	}
	return out
}

func NewPredictCommand(svc *ServiceFlags) *cobra.Command {
	f := NewPredictFlags()

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Submit a loan application and print the verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := service.NewFormController(svc.Client())
			if err := form.SetFields(f.Fields()); err != nil {
				return err
			}
			if err := form.Submit(cmd.Context()); err != nil {
				return errors.WithMessage(err, "invalid application")
			}

			state := form.State()
			if state.Error != "" {
				return errors.New(state.Error)
			}

			response := model.FormResponse{
				Fields: state.Fields,
				Result: state.Result,
				View:   viewPtr(service.Present(state.Result)),
			}

			switch f.Output {
			case "":
				printView(cmd.OutOrStdout(), *response.View)
			case "json":
				out, err := json.MarshalIndent(response, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			case "yaml":
				out, err := yaml.Marshal(&response)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(out))
			default:
				return errors.Errorf("invalid output format: %s", f.Output)
			}
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	for _, name := range model.NumericFields {
		cmd.MarkFlagRequired(flagName(name)) //nolint:errcheck
	}

	return cmd
}

func viewPtr(v model.ResultView) *model.ResultView {
	return &v
}

func printView(w io.Writer, view model.ResultView) {
	verdict := "✗"
	if view.Approved {
		verdict = "✓"
	}
	fmt.Fprintf(w, "%s %s (confidence %.1f%%)\n", verdict, view.PredictionText, view.Confidence)
	fmt.Fprintf(w, "Risk: %s [%d%%]\n", view.RiskLevel, view.RiskPercent)
	if view.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", view.Explanation)
	}
	if len(view.FeatureImpact) > 0 {
		fmt.Fprintln(w, "\nFeature impact:")
		for _, p := range view.FeatureImpact {
			fmt.Fprintf(w, "  %-28s %6.1f\n", p.Name, p.Value)
		}
	}
}
