package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading and emphasis",
			source: "# About\n\nCertified **RYT-500** teacher.",
			want:   "<h1>About</h1>\n<p>Certified <strong>RYT-500</strong> teacher.</p>\n",
		},
		{
			name:   "plain text",
			source: "Just a sentence.",
			want:   "<p>Just a sentence.</p>\n",
		},
		{
			name:   "empty input",
			source: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMarkdown(tt.source))
		})
	}
}
