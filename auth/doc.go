// Package auth provides the authenticating hook decorator.
//
// AuthenticateHook wraps exactly one inner hook and one shared secret. Every
// delivery is verified with HMAC-SHA1 over the raw payload bytes before the
// inner hook sees it; deliveries that present no signature, a malformed
// signature, or a mismatching digest are dropped with a diagnostic and never
// reach the inner hook.
package auth
