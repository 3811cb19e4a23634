package graph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/arcstrata/pkg/errors"
)

// layoutFile is the on-disk shape of a multi-sentence layout.
type layoutFile struct {
	Layouts []Layout `json:"layouts"`
}

// MarshalLayout serializes a single layout to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout parses a single layout produced by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}

// WriteLayouts writes layouts as {"layouts": [...]}.
func WriteLayouts(w io.Writer, layouts []Layout) error {
	if layouts == nil {
		layouts = []Layout{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layoutFile{Layouts: layouts}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layouts")
	}
	return nil
}

// ReadLayouts reads the output of [WriteLayouts].
func ReadLayouts(r io.Reader) ([]Layout, error) {
	var f layoutFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layouts")
	}
	return f.Layouts, nil
}

// WriteLayoutFile writes layouts to path. This is a convenience wrapper
// around [WriteLayouts] for file-based output.
func WriteLayoutFile(path string, layouts []Layout) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteLayouts(f, layouts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
