package call

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go.dw1.io/checkedcall/cast"
)

func TestInvoke(t *testing.T) {
	t.Run("inputOverflowBeforeCall", func(t *testing.T) {
		var sink []byte
		buf := make([]byte, 142)

		_, err := Invoke(oneByteWrite, buf, uint64(len(buf)), &sink)
		require.ErrorIs(t, err, cast.ErrOverflow)
		assert.Contains(t, err.Error(), "call.oneByteWrite: argument 2: Convert[int8, uint64](142)")
		assert.Empty(t, sink)
	})

	t.Run("outputOverflowAfterCall", func(t *testing.T) {
		var sink []byte
		buf := make([]byte, 256)

		res, err := Invoke(wideWrite, buf, len(buf), &sink)
		require.NoError(t, err)
		assert.Len(t, sink, 256)
		assert.True(t, res.Equal(256))

		_, err = As[int8](res)
		require.ErrorIs(t, err, cast.ErrOverflow)
	})

	t.Run("stringArgumentOutOfRange", func(t *testing.T) {
		called := false
		takesInt8 := func(n int8) int8 {
			called = true
			return n
		}

		_, err := Invoke(takesInt8, "300")
		require.ErrorIs(t, err, cast.ErrOverflow)
		assert.Contains(t, err.Error(), "argument 1: Convert[int8, string](300)")
		assert.False(t, called)

		res, err := Invoke(takesInt8, "100")
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, res.Equal(100))
	})

	t.Run("notAFunction", func(t *testing.T) {
		_, err := Invoke(42)
		require.ErrorIs(t, err, ErrSignature)

		var nilFunc func()
		_, err = Invoke(nilFunc)
		require.ErrorIs(t, err, ErrSignature)
	})

	t.Run("arity", func(t *testing.T) {
		_, err := Invoke(func(a, b int) int { return a + b }, 1)
		require.ErrorIs(t, err, ErrSignature)

		_, err = Invoke(func(a, b int) int { return a + b }, 1, 2, 3)
		require.ErrorIs(t, err, ErrSignature)
	})
}

func TestBindSignatures(t *testing.T) {
	t.Run("noResult", func(t *testing.T) {
		var got uint8
		f := MustBind(func(v uint8) { got = v })

		res, err := f.Call(int64(9))
		require.NoError(t, err)
		assert.Nil(t, res.Raw())
		assert.Equal(t, uint8(9), got)
	})

	t.Run("errorOnly", func(t *testing.T) {
		boom := errors.New("boom")
		f := MustBind(func(fail bool) error {
			if fail {
				return boom
			}

			return nil
		})

		_, err := f.Call(false)
		require.NoError(t, err)

		_, err = f.Call(true)
		require.ErrorIs(t, err, boom)
	})

	t.Run("valueAndError", func(t *testing.T) {
		f := MustBind(io.ReadFull)
		buf := make([]byte, 4)

		res, err := f.Call(strings.NewReader("abcd"), buf)
		require.NoError(t, err)

		n, err := As[uint8](res)
		require.NoError(t, err)
		assert.Equal(t, uint8(4), n)
		assert.Equal(t, "abcd", string(buf))

		res, err = f.Call(strings.NewReader("ab"), buf)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.True(t, res.Equal(2))
	})

	t.Run("variadic", func(t *testing.T) {
		sum := func(base int8, rest ...uint8) int {
			n := int(base)
			for _, r := range rest {
				n += int(r)
			}

			return n
		}

		res, err := Invoke(sum, 1, 2, uint64(3), int16(4))
		require.NoError(t, err)
		assert.Equal(t, 10, res.Raw())

		res, err = Invoke(sum, -1)
		require.NoError(t, err)
		assert.Equal(t, -1, res.Raw())

		_, err = Invoke(sum, 1, 2, 300)
		require.ErrorIs(t, err, cast.ErrOverflow)
		assert.Contains(t, err.Error(), "argument 3")
	})

	t.Run("nilArguments", func(t *testing.T) {
		f := MustBind(func(w io.Writer, p *int) bool { return w == nil && p == nil })

		res, err := f.Call(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, true, res.Raw())

		_, err = MustBind(func(n int) int { return n }).Call(nil)
		require.ErrorIs(t, err, cast.ErrUnsupported)
	})

	t.Run("badResults", func(t *testing.T) {
		_, err := Bind(func() (int, int) { return 0, 0 })
		require.ErrorIs(t, err, ErrSignature)

		_, err = Bind(func() (int, int, error) { return 0, 0, nil })
		require.ErrorIs(t, err, ErrSignature)
	})
}

func TestBindOptions(t *testing.T) {
	_, err := Bind(wideWrite, WithName(""))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = Bind(wideWrite, WithLogger(nil))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = Bind(wideWrite, WithMetrics(nil))
	require.ErrorIs(t, err, ErrInvalidOption)

	f, err := Bind(wideWrite, WithName("write"))
	require.NoError(t, err)
	assert.Equal(t, "write", f.Name())

	assert.Equal(t, "call.wideWrite", MustBind(wideWrite).Name())

	assert.Panics(t, func() { MustBind("not a function") })
}

func TestCallAs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewMetrics(nil)
	f := MustBind(wideWrite, WithName("write"), WithLogger(zap.New(core)), WithMetrics(m))

	var sink []byte

	n, err := CallAs[int8](f, make([]byte, 100), 100, &sink)
	require.NoError(t, err)
	assert.Equal(t, int8(100), n)

	_, err = CallAs[int8](f, make([]byte, 142), 142, &sink)
	require.ErrorIs(t, err, cast.ErrOverflow)
	assert.Equal(t, "checked_cast<>() overflowed: write: result: Convert[int8, int64](142)", err.Error())
	assert.Len(t, sink, 242)

	_, err = CallAs[int8](f, make([]byte, 10), -1, &sink)
	require.ErrorIs(t, err, cast.ErrOverflow)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Calls.WithLabelValues("write")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Overflows.WithLabelValues("write", "output")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Overflows.WithLabelValues("write", "input")))

	entries := logs.FilterMessage("checked conversion overflowed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "output", entries[0].ContextMap()["side"])
	assert.Equal(t, "input", entries[1].ContextMap()["side"])
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	f := MustBind(oneByteWrite, WithMetrics(m))

	var sink []byte
	_, err := f.Call(make([]byte, 200), 200, &sink)
	require.ErrorIs(t, err, cast.ErrOverflow)

	count, err := testutil.GatherAndCount(reg, "checkedcall_calls_total", "checkedcall_overflows_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPackageLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	_, err := Invoke(oneByteWrite, make([]byte, 1), 1000, new([]byte))
	require.ErrorIs(t, err, cast.ErrOverflow)
	assert.Equal(t, 1, logs.Len())
}

func TestSetLoggerNil(t *testing.T) {
	prev := Logger()
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(prev) })

	require.NotNil(t, Logger())

	assert.NotPanics(t, func() {
		_, err := Invoke(oneByteWrite, make([]byte, 1), 1000, new([]byte))
		assert.ErrorIs(t, err, cast.ErrOverflow)
	})
}

func TestFuncConcurrentUse(t *testing.T) {
	f := MustBind(func(n uint8) uint8 { return n })

	var (
		wg       sync.WaitGroup
		failures = make(chan error, 64)
	)

	for i := range 64 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := f.Call(i * 8)

			switch {
			case i*8 > 255 && !cast.IsOverflow(err):
				failures <- fmt.Errorf("%d: expected overflow, got %v", i*8, err)
			case i*8 <= 255 && (err != nil || !res.Equal(i*8)):
				failures <- fmt.Errorf("%d: got %v, %v", i*8, res, err)
			}
		}()
	}

	wg.Wait()
	close(failures)

	for err := range failures {
		t.Error(err)
	}
}
