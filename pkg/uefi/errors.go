package uefi

import "errors"

// Common errors. FindPackages and Extract never return them, and the
// locator does not use them: its parsers reject a candidate offset with a
// false ok result instead.
var (
	ErrNotCandidate = errors.New("uefi: not a recognised package header")
	ErrTruncated    = errors.New("uefi: truncated package body")
)
