// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// IOError reports a failure to create or write one of the run's output files.
type IOError struct {
	Op   string // "create", "write", "close", "render"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
