// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paperid validates and normalizes arXiv identifiers given on the
// command line.
package paperid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/citegrowth/pkg/types"
)

// ErrInvalidIdentifier is returned when the input does not look like an arXiv id.
var ErrInvalidIdentifier = errors.New("invalid arXiv identifier")

// newStylePattern matches post-2007 ids: "1706.03762", "2301.07041v2".
var newStylePattern = regexp.MustCompile(`^(\d{4}\.\d{4,5})(?:v\d+)?$`)

// oldStylePattern matches pre-2007 ids: "hep-th/9901001", "math.GT/0309136v1".
var oldStylePattern = regexp.MustCompile(`^([a-z-]+(?:\.[A-Z]{2})?/\d{7})(?:v\d+)?$`)

// urlPrefixes are stripped from pasted arXiv links.
var urlPrefixes = []string{
	"https://arxiv.org/abs/",
	"http://arxiv.org/abs/",
	"https://arxiv.org/pdf/",
	"http://arxiv.org/pdf/",
}

// Resolve trims and normalizes raw into a bare arXiv identifier. It accepts
// an optional "arXiv:" prefix, arxiv.org abs/pdf links, and a trailing
// version suffix, which is dropped because citations are tracked per paper.
func Resolve(raw string) (types.PaperIdentifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidIdentifier)
	}

	for _, prefix := range urlPrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSuffix(s[len(prefix):], ".pdf")
			break
		}
	}
	if len(s) > 6 && strings.EqualFold(s[:6], "arxiv:") {
		s = s[6:]
	}

	if m := newStylePattern.FindStringSubmatch(s); m != nil {
		return types.PaperIdentifier(m[1]), nil
	}

	// Archive names are lower case; the subject class after the dot is upper.
	if archive, rest, ok := strings.Cut(s, "/"); ok {
		name, class, hasClass := strings.Cut(archive, ".")
		candidate := strings.ToLower(name)
		if hasClass {
			candidate += "." + strings.ToUpper(class)
		}
		candidate += "/" + rest
		if m := oldStylePattern.FindStringSubmatch(candidate); m != nil {
			return types.PaperIdentifier(m[1]), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
}

// Slug returns a filesystem-safe filename stem for id.
func Slug(id types.PaperIdentifier) string {
	return strings.NewReplacer("/", "_", ":", "_").Replace(string(id))
}

// DefaultPlotFile returns the chart path used when none is given.
func DefaultPlotFile(id types.PaperIdentifier) string {
	return Slug(id) + "_citations.png"
}
