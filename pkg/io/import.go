package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/render"
)

// ReadJSON decodes a record written by [WriteJSON].
//
// The input must be a JSON object with a "fields" object of string values:
//
//	{
//	  "fields": {"name": "app", "version": "0.1.0", "license": "MIT"}
//	}
//
// ReadJSON returns an error if:
//   - The JSON is malformed or a field value is not a string
//   - The name or version field is missing or empty, since output file
//     names are derived from them
//
// Other fields are not required here; rendering reports any placeholder
// a template uses that the record does not bind. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode fields")
	}
	for _, key := range []string{render.FieldName, render.FieldVersion} {
		if rec.Fields[key] == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "fields.%s is required", key)
		}
	}
	return &rec, nil
}

// ImportJSON reads a record from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "fields file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
