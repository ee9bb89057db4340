// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/citegrowth/internal/paperid"
	"github.com/pdiddy/citegrowth/internal/semantic"
	"github.com/pdiddy/citegrowth/pkg/types"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitNetwork     = 3
	exitRateLimited = 4
	exitIO          = 5
)

// usageError marks bad arguments or flag values.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps an error from the pipeline to a process exit code.
// Rate limiting is checked before the general API case because a 429
// APIError matches both.
func exitCode(err error) int {
	var ioErr *types.IOError
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage), errors.Is(err, paperid.ErrInvalidIdentifier):
		return exitUsage
	case errors.Is(err, semantic.ErrRateLimited):
		return exitRateLimited
	case errors.Is(err, semantic.ErrNetwork),
		errors.Is(err, semantic.ErrAPI),
		errors.Is(err, semantic.ErrInvalidResponse):
		return exitNetwork
	case errors.As(err, &ioErr):
		return exitIO
	default:
		return exitFailure
	}
}
