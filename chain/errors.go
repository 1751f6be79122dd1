// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "fmt"

// ErrorKind classifies a RuleError the way spec.md §7 groups error kinds,
// so callers (the RPC layer in particular) can map a failure to the right
// HTTP status without string-matching the message.
type ErrorKind int

const (
	// KindMalformedInput covers inputs rejected before any chain-state
	// lookup: bad hex, wrong-length hashes, bech32 decode failures.
	KindMalformedInput ErrorKind = iota
	// KindUnknownEntity covers lookups that failed because the referenced
	// block, UTXO, or tip does not exist.
	KindUnknownEntity
	// KindValidation covers the named transaction/block admission
	// failures enumerated in spec.md §7.
	KindValidation
	// KindConfiguration covers fatal startup misconfiguration.
	KindConfiguration
	// KindInternal covers storage or serializer failures that are not
	// the caller's fault.
	KindInternal
)

// RuleError is the single error type the chain package returns, carrying
// enough structure for callers to classify a failure (spec.md §7) through
// errors.As and its Kind, while still reading naturally through %v/%s.
type RuleError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RuleError) Error() string {
	return e.Msg
}

func newRuleError(kind ErrorKind, msg string) *RuleError {
	return &RuleError{Kind: kind, Msg: msg}
}

func newRuleErrorf(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// The named validation failures from spec.md §7. A fresh *RuleError is
// constructed per call (rather than shared sentinels), so two failures never
// compare equal under errors.Is; callers identify a failure by its Kind or
// by its message text, which stays exactly the string spec.md names.
const (
	msgNonCoinbaseNoInputs     = "non-coinbase tx must have inputs"
	msgDoubleSpendInTx         = "double spend in tx"
	msgUTXOMissing             = "missing utxo"
	msgPubkeyMismatch          = "pubkey does not match utxo address"
	msgInvalidSignature        = "invalid signature"
	msgDoubleSpendInMempool    = "double spend in mempool"
	msgOutputsExceedInputs     = "outputs exceed inputs"
	msgBlockEmpty              = "block empty"
	msgUnexpectedGenesisBlock  = "unexpected genesis block"
	msgTipMissing              = "tip missing"
	msgUnexpectedHeight        = "unexpected height"
	msgPrevHashMismatch        = "prev hash mismatch"
	msgMerkleMismatch          = "merkle mismatch"
	msgPowInvalid              = "pow invalid"
	msgCoinbaseInputsPresent   = "coinbase inputs present"
	msgIntraBlockDoubleSpend   = "intra-block double spend"
	msgCoinbaseExceedsSubsidy  = "coinbase exceeds subsidy+fees"
)
