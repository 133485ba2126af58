package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.dw1.io/checkedcall/call"
	"go.dw1.io/checkedcall/internal/report"
)

type options struct {
	output  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "checkedcall",
		Short:         "Checked integer conversions for function calls",
		Long:          `checkedcall converts integers with a round-trip check and runs the checked call scenarios.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := report.ParseFormat(opts.output); err != nil {
				return err
			}

			if opts.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}

				call.SetLogger(l)
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", string(report.FormatTable), "Output format: table, json")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log conversion failures")

	cmd.AddCommand(newConvertCmd(opts), newDemoCmd(opts))

	return cmd
}

func (o *options) format() report.Format {
	f, _ := report.ParseFormat(o.output)

	return f
}
