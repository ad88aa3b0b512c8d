package dataset

import (
	"encoding/json"
	"io"
)

// WriteJSON renders any of the dataset shapes (project records, event
// infos, link->profile maps) as indented json.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
