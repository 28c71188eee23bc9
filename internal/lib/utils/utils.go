// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON pretty-prints any Go value as indented JSON to w.
//
// Values containing unsupported types (channels, funcs, cycles) return
// the marshalling error and nothing is written.
func PrintJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
