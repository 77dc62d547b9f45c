package service

import (
	dErrors "shoplink/pkg/domain-errors"
)

// Handshake failure taxonomy. Callers match with errors.Is; the codes drive
// the HTTP mapping in the transport layer.
var (
	// ErrInvalidTenant rejects a malformed shop identifier before any state
	// is mutated.
	ErrInvalidTenant = dErrors.New(dErrors.CodeInvalidTenant, "invalid shop domain")

	// ErrHandshakeNotFound covers absent, expired, and never-issued nonces
	// uniformly. Do not split these cases: distinguishing "expired" from
	// "never existed" from "wrong tenant" would give an attacker an oracle.
	ErrHandshakeNotFound = dErrors.New(dErrors.CodeHandshakeNotFound, "no pending handshake")

	// ErrStateMismatch means a nonce was recovered but does not match the
	// returned state: an explicit replay signal, logged at higher severity
	// than ErrHandshakeNotFound.
	ErrStateMismatch = dErrors.New(dErrors.CodeStateMismatch, "state parameter mismatch")

	// ErrExchangeFailed is terminal for a handshake; the merchant must
	// restart from Initiate.
	ErrExchangeFailed = dErrors.New(dErrors.CodeExchangeFailed, "authorization code exchange failed")
)
