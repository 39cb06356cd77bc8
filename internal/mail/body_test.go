package mail

import "testing"

func TestCleanBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses blank runs",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "keeps single blank line",
			input: "a\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "strips trailing spaces per line",
			input: "a   \nb\t\nc",
			want:  "a\nb\nc",
		},
		{
			name:  "trims surrounding whitespace",
			input: "\n\n  hello  \n\n",
			want:  "hello",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanBody(tt.input); got != tt.want {
				t.Fatalf("cleanBody(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
