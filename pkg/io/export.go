package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/render"
)

// Record is the JSON form of one generator run: the bound recipe fields
// plus what was produced from them.
type Record struct {
	Fields     render.Fields `json:"fields"`
	Files      []string      `json:"files,omitempty"`
	Advisories []string      `json:"advisories,omitempty"`
}

// WriteJSON encodes a record as indented JSON and writes it to w.
// Field keys are emitted in sorted order, so the output is stable.
func WriteJSON(rec Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a record to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rec Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteJSON(rec, f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
