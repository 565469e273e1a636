package pipeline

import (
	"context"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"unchanged", "# Title\n\nText", "# Title\n\nText"},
		{"CRLF to LF", "a\r\nb\r\n", "a\nb\n"},
		{"lone CR to LF", "a\rb", "a\nb"},
		{"three blank lines collapse", "a\n\n\n\nb", "a\n\nb"},
		{"whitespace-only lines count as blank", "a\n\n  \n\t\nb", "a\n\nb"},
		{
			name:  "blank lines inside backtick fence kept",
			input: "```go\nx := 1\n\n\n\ny := 2\n```\n\n\n\nafter",
			want:  "```go\nx := 1\n\n\n\ny := 2\n```\n\nafter",
		},
		{
			name:  "tilde fence not closed by backticks",
			input: "~~~\n```\n\n\n\n~~~",
			want:  "~~~\n```\n\n\n\n~~~",
		},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "a\r\n\n\n\nb"
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("PreprocessMarkdown() with canceled context = %q, want input unchanged", got)
	}
}
