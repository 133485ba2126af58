package call_test

import (
	"fmt"
	"io"

	"go.dw1.io/checkedcall/call"
)

func write(buf []byte, size int8, w io.Writer) int8 {
	n, _ := w.Write(buf[:size])

	return int8(n)
}

func wideWrite(buf []byte, size uint64, w io.Writer) int64 {
	n, _ := w.Write(buf[:size])

	return int64(n)
}

func Example() {
	buf := make([]byte, 142)

	_, err := call.Call3(write, buf, uint64(len(buf)), io.Discard)
	fmt.Println(err)
	// Output: checked_cast<>() overflowed: call_test.write: argument 2: Convert[int8, uint64](142)
}

func ExampleAs() {
	res, err := call.Call3(write, make([]byte, 100), uint64(100), io.Discard)
	if err != nil {
		panic(err)
	}

	n, err := call.As[uint64](res)
	fmt.Println(n, err)
	// Output: 100 <nil>
}

func ExampleCallAs() {
	f := call.MustBind(wideWrite, call.WithName("write"))

	_, err := call.CallAs[int8](f, make([]byte, 256), 256, io.Discard)
	fmt.Println(err)
	// Output: checked_cast<>() overflowed: write: result: Convert[int8, int64](256)
}
