package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// Output is a rendered recipe waiting to be written.
type Output struct {
	FileName string
	Content  string
}

// FileName returns the recipe file name BitBake derives PN and PV from.
func FileName(name, version, ext string) string {
	return fmt.Sprintf("%s_%s.%s", name, version, ext)
}

// RenderAll executes every template against fields. It fails on the first
// template that cannot be rendered, before anything touches the disk.
func RenderAll(fields Fields, templates ...*Template) ([]Output, error) {
	if len(templates) == 0 {
		templates = []*Template{Default()}
	}

	outputs := make([]Output, 0, len(templates))
	for _, t := range templates {
		content, err := t.Execute(fields)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{
			FileName: FileName(fields[FieldName], fields[FieldVersion], t.Ext),
			Content:  content,
		})
	}
	return outputs, nil
}

// WriteFile writes content to dir/filename, truncating any existing file,
// and returns the path written.
func WriteFile(dir, filename, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "unable to create output directory %s", dir)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "unable to write bitbake recipe %s", path)
	}
	return path, nil
}
