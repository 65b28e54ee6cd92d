package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"

	"github.com/goliatone/go-hooks/core"
	glog "github.com/goliatone/go-logger/glog"
)

// The wire format is "sha1=<lowercase hex digest>". The tag is stripped by
// fixed length; extending to a longer tag such as "sha256=" requires
// re-deriving this from the tag actually present.
const signaturePrefixLen = len("sha1=")

type Option func(*AuthenticateHook)

func WithLogger(logger core.Logger) Option {
	return func(h *AuthenticateHook) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithDeliveryLog records each verification outcome for operational
// visibility. Recording failures are logged and otherwise ignored; the log
// never influences whether a delivery is forwarded.
func WithDeliveryLog(log core.DeliveryLog) Option {
	return func(h *AuthenticateHook) {
		h.deliveryLog = log
	}
}

// AuthenticateHook is immutable after construction and holds no per-delivery
// state, so one instance serves arbitrarily many concurrent deliveries.
type AuthenticateHook struct {
	secret      string
	hook        core.Hook
	logger      core.Logger
	deliveryLog core.DeliveryLog
}

// NewAuthenticateHook wraps hook with signature verification against secret.
// The secret is accepted as given; an empty secret is a caller error but is
// not rejected here.
func NewAuthenticateHook(secret string, hook core.Hook, opts ...Option) *AuthenticateHook {
	authenticated := &AuthenticateHook{
		secret: secret,
		hook:   hook,
		logger: glog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(authenticated)
	}
	return authenticated
}

func (h *AuthenticateHook) Handle(delivery core.Delivery) {
	if h == nil || h.hook == nil {
		return
	}
	if !delivery.HasSignature() {
		h.logger.Debug("delivery carried no signature",
			"event", delivery.Event,
			"delivery_id", delivery.ID,
		)
		h.record(delivery, core.RejectReasonMissingSignature)
		return
	}
	if err := h.authenticate(delivery.Payload, delivery.Signature); err != nil {
		h.logger.Error("failed to authenticate delivery",
			"event", delivery.Event,
			"delivery_id", delivery.ID,
			"error", err.Error(),
		)
		h.record(delivery, rejectReason(err))
		return
	}
	h.record(delivery, "")
	h.hook.Handle(delivery)
}

// CloneHook produces an independent decorator sharing the same secret and
// wrapping a clone of the inner hook.
func (h *AuthenticateHook) CloneHook() core.Hook {
	if h == nil {
		return nil
	}
	cloned := *h
	cloned.hook = core.CloneHook(h.hook)
	return &cloned
}

func (h *AuthenticateHook) authenticate(payload []byte, signature string) error {
	if len(signature) < signaturePrefixLen {
		return malformedSignatureError(signature)
	}
	presented, err := hex.DecodeString(signature[signaturePrefixLen:])
	if err != nil {
		return malformedSignatureError(signature)
	}

	mac := hmac.New(sha1.New, []byte(h.secret))
	_, _ = mac.Write(payload)
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(expected, presented) != 1 {
		return authenticationFailedError()
	}
	return nil
}

func (h *AuthenticateHook) record(delivery core.Delivery, reason string) {
	if h.deliveryLog == nil {
		return
	}
	outcome := core.DeliveryOutcomeForwarded
	if reason != "" {
		outcome = core.DeliveryOutcomeRejected
	}
	_, err := h.deliveryLog.Record(context.Background(), core.DeliveryLogEntry{
		Event:       delivery.Event,
		DeliveryID:  delivery.ID,
		Outcome:     outcome,
		Reason:      reason,
		PayloadSize: len(delivery.Payload),
	})
	if err != nil {
		h.logger.Error("failed to record delivery outcome",
			"event", delivery.Event,
			"delivery_id", delivery.ID,
			"error", err.Error(),
		)
	}
}

var (
	_ core.Hook       = (*AuthenticateHook)(nil)
	_ core.ClonerHook = (*AuthenticateHook)(nil)
)
