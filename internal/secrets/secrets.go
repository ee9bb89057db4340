// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Semantic Scholar API key. Keys may come from
// configuration, from a directory of plain-text secret files (filename is the
// key name, trimmed contents are the value), or from the environment.
package secrets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDir is the secrets directory, relative to the working directory.
	DefaultDir = ".secrets/"

	// SemanticScholarKey is the secret file holding the API key.
	SemanticScholarKey = "semantic-scholar-api-key"

	// SemanticScholarEnv is the environment variable holding the API key.
	SemanticScholarEnv = "SEMANTIC_SCHOLAR_API_KEY"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey picks the Semantic Scholar key: explicit (flag or config file)
// first, then the secrets directory, then the environment. It returns the
// key and a short name for where it came from; both are empty when no key
// is configured, which the API allows at a lower rate limit.
func APIKey(explicit, dir string, logger *slog.Logger) (key, source string, err error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, "config", nil
	}

	loaded, err := Load(dir, logger)
	if err != nil {
		return "", "", err
	}
	if v, ok := loaded[SemanticScholarKey]; ok {
		return v, filepath.Join(dir, SemanticScholarKey), nil
	}

	if v := strings.TrimSpace(os.Getenv(SemanticScholarEnv)); v != "" {
		return v, SemanticScholarEnv, nil
	}
	return "", "", nil
}
