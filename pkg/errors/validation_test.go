package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "s1", false},
		{"valid conllu id", "weblog-juancole.com_juancole_20051126063000_ENG_20051126_063000-0001", false},
		{"valid with dot", "e3.1", false},
		{"valid unicode", "שורש", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("sentence", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "treebank/en_ewt-ud-dev.conllu", false},
		{"absolute", "/data/sentences.json", false},
		{"parent", "../fixtures/s.yaml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a/", 3000), true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
