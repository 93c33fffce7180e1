package render

import (
	"encoding/json"
	"io"
)

// JSON writes any value as indented JSON, for --json output.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
