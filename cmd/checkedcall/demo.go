package main

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"go.dw1.io/checkedcall/call"
	"go.dw1.io/checkedcall/internal/demo"
	"go.dw1.io/checkedcall/internal/report"
)

// ErrScenarioFailed is returned when a demo scenario did not produce the
// expected outcome.
var ErrScenarioFailed = errors.New("scenario failed")

func newDemoCmd(opts *options) *cobra.Command {
	var metrics bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the checked call scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			m := call.NewMetrics(reg)

			r, err := demo.NewRunner(call.WithMetrics(m))
			if err != nil {
				return err
			}

			outcomes, err := r.RunAll(demo.Scenarios())
			if err != nil {
				return err
			}

			if err := report.Outcomes(cmd.OutOrStdout(), opts.format(), outcomes); err != nil {
				return err
			}

			if metrics {
				if err := writeMetrics(cmd, reg); err != nil {
					return err
				}
			}

			failed := 0
			for _, o := range outcomes {
				if !o.Passed() {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrScenarioFailed, failed, len(outcomes))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print call and overflow counters after the run")

	return cmd
}

func writeMetrics(cmd *cobra.Command, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := ""
			for _, lp := range metric.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}

			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, metric.GetCounter().GetValue())
		}
	}

	return nil
}
