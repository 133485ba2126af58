package main

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"go.dw1.io/checkedcall/cast"
	"go.dw1.io/checkedcall/internal/report"
)

// ErrConversionFailed is returned when at least one value did not convert.
var ErrConversionFailed = errors.New("conversion failed")

var integerTypes = map[string]reflect.Type{
	"int":     reflect.TypeFor[int](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint":    reflect.TypeFor[uint](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"uintptr": reflect.TypeFor[uintptr](),
}

func typeNames() string {
	names := make([]string, 0, len(integerTypes))
	for name := range integerTypes {
		names = append(names, name)
	}

	slices.Sort(names)

	return strings.Join(names, ", ")
}

func lookupType(name string) (reflect.Type, error) {
	t, ok := integerTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown integer type %q (want one of %s)", name, typeNames())
	}

	return t, nil
}

func newConvertCmd(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert --to TYPE VALUE...",
		Short: "Convert integers with a round-trip check",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := lookupType(from)
			if err != nil {
				return err
			}

			dst, err := lookupType(to)
			if err != nil {
				return err
			}

			results := make([]report.Conversion, 0, len(args))
			failed := 0

			for _, arg := range args {
				c := convertOne(arg, src, dst)
				if !c.OK() {
					failed++
				}

				results = append(results, c)
			}

			if err := report.Conversions(cmd.OutOrStdout(), opts.format(), results); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d values", ErrConversionFailed, failed, len(args))
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&from, "from", "int64", "Source integer type ("+typeNames()+")")
	flags.StringVar(&to, "to", "", "Target integer type ("+typeNames()+")")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// convertOne parses arg as a value of type src and converts it to dst. Both
// steps are checked, so "300" with --from int8 fails while parsing.
func convertOne(arg string, src, dst reflect.Type) report.Conversion {
	c := report.Conversion{From: src.String(), To: dst.String(), Input: arg}

	parsed, err := parse(arg, src)
	if err != nil {
		c.Error = err.Error()

		return c
	}

	out, err := cast.Value(parsed, dst)
	if err != nil {
		c.Error = err.Error()

		return c
	}

	c.Result = fmt.Sprint(out.Interface())

	return c
}

func parse(arg string, t reflect.Type) (reflect.Value, error) {
	var (
		v   any
		err error
	)

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err = cast.To[int64](arg)
	default:
		v, err = cast.To[uint64](arg)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	return cast.Value(reflect.ValueOf(v), t)
}
