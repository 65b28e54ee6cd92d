// Package core defines the delivery and hook contracts shared by the rest
// of the module.
//
// A Delivery carries the exact payload bytes received on the wire plus the
// raw signature header value; signature verification always runs against
// those bytes, never a re-serialized form.
package core
