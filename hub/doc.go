// Package hub routes accepted deliveries to registered hooks by event name.
//
// Hooks registered through RegisterAuthenticated are wrapped in the
// authenticating decorator before they ever see a delivery; the hub itself
// performs no verification.
package hub
