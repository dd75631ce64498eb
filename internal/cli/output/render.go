package output

import (
	"fmt"
	"io"
)

// Render writes r to w. With tableMode a TableResult prints its table;
// otherwise its raw bytes are copied unchanged. A RawResult holding JSON is
// pretty-printed in either mode.
func Render(w io.Writer, r Result, tableMode bool) error {
	switch v := r.(type) {
	case *TableResult:
		if tableMode && v.Table != nil {
			return v.Table.Render(w)
		}
		_, err := w.Write(v.Raw)
		return err
	case *RawResult:
		_, err := w.Write(PrettyJSON(v.Body))
		return err
	case EmptyResult, *EmptyResult, nil:
		return nil
	default:
		return fmt.Errorf("output: unsupported result %T", r)
	}
}
