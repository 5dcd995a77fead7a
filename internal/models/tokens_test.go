package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTokens(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, nil},
		{"empty strings dropped", []string{"", "  "}, nil},
		{"upper cases and trims", []string{" post ", "Story"}, []string{"POST", "STORY"}},
		{"spaces and hyphens become underscores", []string{"product review", "live-stream"}, []string{"PRODUCT_REVIEW", "LIVE_STREAM"}},
		{"dedupes preserving first occurrence", []string{"POST", "post", "REEL", "Post"}, []string{"POST", "REEL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTokens(tt.input))
		})
	}
}
