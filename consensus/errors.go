// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import "errors"

// Structural block errors returned by CheckBlockStructure. Their text matches
// the "block empty", "merkle mismatch", and "pow invalid" messages the chain
// package defines separately for the same checks in ValidateBlock.
var (
	errBlockEmpty     = errors.New("block empty")
	errMerkleMismatch = errors.New("merkle mismatch")
	errPowInvalid     = errors.New("pow invalid")
)
