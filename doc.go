// Package hooks delivers inbound webhook events to registered handlers,
// gated by HMAC-SHA1 payload signatures.
//
// A hook registered with a secret only sees deliveries whose signature
// verifies over the raw payload bytes; everything else is dropped and the
// outcome is logged. Verification binds exactly one secret and one
// algorithm per hook for its lifetime.
package hooks
