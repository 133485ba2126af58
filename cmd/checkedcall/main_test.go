package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		out, err := execute(t, "convert", "--to", "uint8", "200")
		require.NoError(t, err)
		assert.Contains(t, out, "200")
		assert.Contains(t, out, "PASS")
	})

	t.Run("overflow", func(t *testing.T) {
		out, err := execute(t, "convert", "--to", "uint8", "--", "300", "-1")
		require.ErrorIs(t, err, ErrConversionFailed)
		assert.Contains(t, out, "checked_cast<>() overflowed")
		assert.Contains(t, err.Error(), "2 of 2")
	})

	t.Run("parseOverflow", func(t *testing.T) {
		out, err := execute(t, "convert", "--from", "int8", "--to", "int64", "300", "-o", "json")
		require.ErrorIs(t, err, ErrConversionFailed)
		assert.Contains(t, out, `Convert[int8, int64](300)`)
	})

	t.Run("unknownType", func(t *testing.T) {
		_, err := execute(t, "convert", "--to", "int128", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown integer type")
	})

	t.Run("badFormat", func(t *testing.T) {
		_, err := execute(t, "convert", "--to", "int8", "1", "-o", "xml")
		require.Error(t, err)
	})
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo", "--metrics")
	require.NoError(t, err)

	for _, name := range []string{"narrow-100", "wide-100", "narrow-142", "wide-142", "narrow-256", "wide-256"} {
		assert.Contains(t, out, name)
	}

	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "checkedcall_overflows_total func=WriteNarrow side=input 2")
	assert.Contains(t, out, "checkedcall_overflows_total func=WriteWide side=output")
}
