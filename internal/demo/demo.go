// Package demo exercises checked calls against two writer functions that
// disagree about how wide a byte count is.
package demo

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.dw1.io/checkedcall/call"
	"go.dw1.io/checkedcall/cast"
)

// WriteNarrow writes the first size bytes of buf to w and returns the count
// as a one-byte value.
func WriteNarrow(buf []byte, size int8, w io.Writer) int8 {
	if size <= 0 {
		return 0
	}

	n, _ := w.Write(buf[:size])

	return int8(n)
}

// WriteWide writes the first size bytes of buf to w and returns the count.
func WriteWide(buf []byte, size uint64, w io.Writer) int64 {
	n, _ := w.Write(buf[:size])

	return int64(n)
}

// Callee selects the function a scenario calls.
type Callee string

const (
	Narrow Callee = "narrow"
	Wide   Callee = "wide"
)

// Expect is the outcome a scenario should produce.
type Expect string

const (
	ExpectOK             Expect = "ok"
	ExpectInputOverflow  Expect = "input-overflow"
	ExpectOutputOverflow Expect = "output-overflow"
)

// Scenario is one checked call: a buffer of Size bytes is written through
// Callee with its size passed as uint64, and the result is read back as int8.
type Scenario struct {
	Name   string `json:"name"`
	Callee Callee `json:"callee"`
	Size   int    `json:"size"`
	Expect Expect `json:"expect"`
}

// Outcome is what running a Scenario produced.
type Outcome struct {
	Scenario Scenario `json:"scenario"`
	Got      Expect   `json:"got"`
	Result   int8     `json:"result"`
	Written  int      `json:"written"`
	Error    string   `json:"error,omitempty"`
}

// Passed reports whether the outcome matches the expectation.
func (o Outcome) Passed() bool {
	return o.Got == o.Scenario.Expect
}

// Scenarios returns the checks run by the demo command.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "narrow-100", Callee: Narrow, Size: 100, Expect: ExpectOK},
		{Name: "wide-100", Callee: Wide, Size: 100, Expect: ExpectOK},
		{Name: "narrow-142", Callee: Narrow, Size: 142, Expect: ExpectInputOverflow},
		{Name: "wide-142", Callee: Wide, Size: 142, Expect: ExpectOutputOverflow},
		{Name: "narrow-256", Callee: Narrow, Size: 256, Expect: ExpectInputOverflow},
		{Name: "wide-256", Callee: Wide, Size: 256, Expect: ExpectOutputOverflow},
	}
}

// Runner binds the demo callees once and runs scenarios against them.
type Runner struct {
	narrow *call.Func
	wide   *call.Func
}

// NewRunner binds both callees with opts.
func NewRunner(opts ...call.Option) (*Runner, error) {
	narrow, err := call.Bind(WriteNarrow, append([]call.Option{call.WithName("WriteNarrow")}, opts...)...)
	if err != nil {
		return nil, err
	}

	wide, err := call.Bind(WriteWide, append([]call.Option{call.WithName("WriteWide")}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Runner{narrow: narrow, wide: wide}, nil
}

// Run executes s. Conversion failures are recorded in the Outcome; any other
// error is returned.
func (r *Runner) Run(s Scenario) (Outcome, error) {
	var f *call.Func

	switch s.Callee {
	case Narrow:
		f = r.narrow
	case Wide:
		f = r.wide
	default:
		return Outcome{}, fmt.Errorf("unknown callee %q", s.Callee)
	}

	var (
		out = Outcome{Scenario: s}
		buf = make([]byte, s.Size)
		w   bytes.Buffer
	)

	copy(buf, "Hello!\n")

	res, err := f.Call(buf, uint64(len(buf)), &w)
	out.Written = w.Len()

	if err != nil {
		return classify(out, err, ExpectInputOverflow)
	}

	out.Result, err = call.ResultAs[int8](f, res)
	if err != nil {
		return classify(out, err, ExpectOutputOverflow)
	}

	out.Got = ExpectOK

	return out, nil
}

// RunAll runs every scenario in order and stops at the first error that is
// not a conversion failure.
func (r *Runner) RunAll(scenarios []Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenarios))

	for _, s := range scenarios {
		out, err := r.Run(s)
		if err != nil {
			return outcomes, fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

func classify(out Outcome, err error, side Expect) (Outcome, error) {
	if !errors.Is(err, cast.ErrOverflow) {
		return out, err
	}

	out.Got = side
	out.Error = err.Error()

	return out, nil
}
