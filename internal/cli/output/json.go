package output

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// PrettyJSON indents b when it is valid JSON and returns it unchanged
// otherwise.
func PrettyJSON(b []byte) []byte {
	if len(b) == 0 || !gjson.ValidBytes(b) {
		return b
	}
	return pretty.Pretty(b)
}
