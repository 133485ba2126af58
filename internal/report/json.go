package report

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// JSON writes v to w as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := api.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}
