package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/arcstrata/pkg/errors"
)

var extFormats = map[string]string{
	".json":   FormatJSON,
	".yaml":   FormatYAML,
	".yml":    FormatYAML,
	".toml":   FormatTOML,
	".conllu": FormatCoNLLU,
	".conll":  FormatCoNLLU,
}

// envelope accepts both a document and a bare sentence at the top level.
type envelope struct {
	Sentences []Sentence `json:"sentences" yaml:"sentences" toml:"sentences"`
	Sentence  `yaml:",inline"`
}

// DetectFormat returns the format for a path or format name. Names win
// over extensions, so "conllu" and "treebank.conllu" both yield
// [FormatCoNLLU]. An unknown name is an [errors.ErrCodeInvalidFormat]
// error.
func DetectFormat(nameOrPath string) (string, error) {
	switch f := strings.ToLower(nameOrPath); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatCoNLLU:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(nameOrPath))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect input format of %q", nameOrPath)
}

// ReadDocument decodes a document in the given format from r. A top-level
// sentence without a "sentences" list is returned as a one-sentence
// document. ReadDocument does not close r.
func ReadDocument(r io.Reader, format string) (*Document, error) {
	if format == FormatCoNLLU {
		return ReadCoNLLU(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read input")
	}

	var env envelope
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &env)
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&env)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.Decode(string(data), &env)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}

	if len(env.Sentences) > 0 {
		return &Document{Sentences: env.Sentences}, nil
	}
	if len(env.Tokens) == 0 && len(env.Edges) == 0 {
		return &Document{}, nil
	}
	return &Document{Sentences: []Sentence{env.Sentence}}, nil
}

// ReadDocumentFile opens path and decodes it with [ReadDocument]. An empty
// format is detected from the file extension.
func ReadDocumentFile(path, format string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f, format)
}

// WriteDocument encodes doc in the given format. CoNLL-U output is not
// supported; use JSON, YAML or TOML.
func WriteDocument(w io.Writer, doc *Document, format string) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot write documents as %s", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}
