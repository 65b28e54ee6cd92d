package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Delivery is one inbound webhook event: the unparsed payload bytes and the
// raw signature header value as presented by the sender. An empty Signature
// means the sender presented none.
type Delivery struct {
	ID         string
	Event      string
	Signature  string
	Payload    []byte
	Headers    map[string]string
	ReceivedAt time.Time
}

func (d Delivery) HasSignature() bool {
	return d.Signature != ""
}

// Hook consumes a delivery. The contract is fire-and-forget: any internal
// failure is the hook's own responsibility to manage, nothing propagates to
// the caller. Implementations must be safe for concurrent use.
type Hook interface {
	Handle(delivery Delivery)
}

// HookFunc lets a bare function or closure serve as a Hook.
type HookFunc func(Delivery)

func (f HookFunc) Handle(delivery Delivery) {
	if f == nil {
		return
	}
	f(delivery)
}

func (f HookFunc) CloneHook() Hook {
	return f
}

// ClonerHook is implemented by hooks that can produce an independent,
// behaviorally identical copy of themselves.
type ClonerHook interface {
	CloneHook() Hook
}

// CloneHook duplicates a hook. Hooks that implement ClonerHook get a real
// copy; for the rest the shared value is returned, which is equivalent for
// hooks that are side-effect-free data plus a callable.
func CloneHook(hook Hook) Hook {
	if hook == nil {
		return nil
	}
	if cloner, ok := hook.(ClonerHook); ok {
		return cloner.CloneHook()
	}
	return hook
}

const (
	DeliveryOutcomeForwarded = "forwarded"
	DeliveryOutcomeRejected  = "rejected"
)

const (
	RejectReasonMissingSignature   = "missing_signature"
	RejectReasonMalformedSignature = "malformed_signature"
	RejectReasonDigestMismatch     = "digest_mismatch"
)

// DeliveryLogEntry is one audit record of a delivery outcome. The log is
// observability only; nothing consults it to accept or reject a delivery.
type DeliveryLogEntry struct {
	ID          string
	Event       string
	DeliveryID  string
	Outcome     string
	Reason      string
	PayloadSize int
	CreatedAt   time.Time
}

type DeliveryLogFilter struct {
	Event   string
	Outcome string
	Limit   int
}

type DeliveryLog interface {
	Record(ctx context.Context, entry DeliveryLogEntry) (DeliveryLogEntry, error)
	List(ctx context.Context, filter DeliveryLogFilter) ([]DeliveryLogEntry, error)
}

type SecretProvider interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
