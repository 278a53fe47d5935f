package format

import (
	"encoding/json"
	"io"
)

// Formatter abstracts output formatting for CLI payloads.
type Formatter interface {
	Write(w io.Writer, payload any) error
}

// JSONFormatter writes compact JSON output.
type JSONFormatter struct{}

// Write writes the JSON payload to a writer.
func (f JSONFormatter) Write(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(payload)
}

// IndentedJSONFormatter writes pretty-printed JSON, used for exports.
type IndentedJSONFormatter struct{}

// Write writes the indented JSON payload to a writer.
func (f IndentedJSONFormatter) Write(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
