// Package report renders demo outcomes and conversion results for the
// command line, as a table or as JSON.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"go.dw1.io/checkedcall/internal/demo"
)

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatTable, FormatJSON)
	}
}

// Conversion is the result of converting one value.
type Conversion struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Input  string `json:"input"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the conversion succeeded.
func (c Conversion) OK() bool {
	return c.Error == ""
}

// Conversions writes results to w in format f.
func Conversions(w io.Writer, f Format, results []Conversion) error {
	if f == FormatJSON {
		return JSON(w, results)
	}

	rows := make([][]string, 0, len(results))
	for _, c := range results {
		rows = append(rows, []string{c.From, c.To, c.Input, c.Result, status(c.OK()), c.Error})
	}

	table(w, []string{"From", "To", "Input", "Result", "Status", "Error"}, rows)

	return nil
}

// Outcomes writes demo outcomes to w in format f.
func Outcomes(w io.Writer, f Format, outcomes []demo.Outcome) error {
	if f == FormatJSON {
		return JSON(w, outcomes)
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		result := "-"
		if o.Got == demo.ExpectOK {
			result = strconv.Itoa(int(o.Result))
		}

		rows = append(rows, []string{
			o.Scenario.Name,
			string(o.Scenario.Callee),
			strconv.Itoa(o.Scenario.Size),
			string(o.Scenario.Expect),
			string(o.Got),
			result,
			strconv.Itoa(o.Written),
			status(o.Passed()),
		})
	}

	table(w, []string{"Scenario", "Callee", "Size", "Expect", "Got", "Result", "Written", "Status"}, rows)

	return nil
}

func table(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetBorder(true)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

func status(ok bool) string {
	if ok {
		return "PASS"
	}

	return "FAIL"
}
