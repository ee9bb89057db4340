// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paperid

import (
	"errors"
	"testing"

	"github.com/pdiddy/citegrowth/pkg/types"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.PaperIdentifier
	}{
		{"new style 4 digit", "0704.0001", "0704.0001"},
		{"new style 5 digit", "1706.03762", "1706.03762"},
		{"with version", "2301.07041v2", "2301.07041"},
		{"arXiv prefix", "arXiv:1706.03762", "1706.03762"},
		{"lowercase prefix", "arxiv:1706.03762v5", "1706.03762"},
		{"surrounding whitespace", "  1706.03762 \n", "1706.03762"},
		{"abs URL", "https://arxiv.org/abs/1706.03762v7", "1706.03762"},
		{"pdf URL", "https://arxiv.org/pdf/1706.03762.pdf", "1706.03762"},
		{"old style", "hep-th/9901001", "hep-th/9901001"},
		{"old style upper archive", "HEP-TH/9901001", "hep-th/9901001"},
		{"old style with subject class", "math.gt/0309136v1", "math.GT/0309136"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"hello-world",
		"1706.037",
		"17060.3762",
		"10.1145/1234567.1234568",
		"hep-th/99010",
		"arXiv:",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Resolve(input)
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("Resolve(%q) error = %v, want ErrInvalidIdentifier", input, err)
			}
		})
	}
}

func TestDefaultPlotFile(t *testing.T) {
	tests := []struct {
		id   types.PaperIdentifier
		want string
	}{
		{"1706.03762", "1706.03762_citations.png"},
		{"hep-th/9901001", "hep-th_9901001_citations.png"},
	}
	for _, tt := range tests {
		if got := DefaultPlotFile(tt.id); got != tt.want {
			t.Errorf("DefaultPlotFile(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
