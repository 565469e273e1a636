package assets

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "preview", nil},
		{"name with hyphen", "pdf-merge", nil},
		{"name with underscore", "my_style", nil},
		{"mixed case", "MyStyle", nil},
		{"empty", "", ErrInvalidAssetName},
		{"forward slash", "a/b", ErrInvalidAssetName},
		{"backslash", `a\b`, ErrInvalidAssetName},
		{"dot dot", "..", ErrInvalidAssetName},
		{"extension", "preview.css", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
