package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-hooks/core"
)

const zenPayload = `{"zen": "Approachable is better than simple."}`

func signSHA1(secret string, payload []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	_, _ = mac.Write(payload)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

type recordingHook struct {
	mu         sync.Mutex
	calls      int
	lastEvent  string
	lastBytes  []byte
	lastHeader string
}

func (h *recordingHook) Handle(delivery core.Delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	h.lastEvent = delivery.Event
	h.lastBytes = delivery.Payload
	h.lastHeader = delivery.Signature
}

func (h *recordingHook) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func TestAuthenticateHook_ForwardsValidDelivery(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	delivery := core.Delivery{
		ID:        "d1",
		Event:     "push",
		Payload:   []byte(zenPayload),
		Signature: signSHA1("secret", []byte(zenPayload)),
	}
	authenticated.Handle(delivery)

	if inner.callCount() != 1 {
		t.Fatalf("expected inner hook invoked exactly once, got %d", inner.callCount())
	}
	if string(inner.lastBytes) != zenPayload {
		t.Fatalf("expected original payload forwarded unchanged, got %q", inner.lastBytes)
	}
	if inner.lastHeader != delivery.Signature {
		t.Fatalf("expected delivery forwarded unchanged")
	}
}

func TestAuthenticateHook_RejectsWrongSecret(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("wrong-secret", inner)

	authenticated.Handle(core.Delivery{
		Event:     "push",
		Payload:   []byte(zenPayload),
		Signature: signSHA1("secret", []byte(zenPayload)),
	})

	if inner.callCount() != 0 {
		t.Fatalf("expected inner hook untouched on secret mismatch, got %d calls", inner.callCount())
	}
}

func TestAuthenticateHook_MissingSignatureNeverForwards(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	authenticated.Handle(core.Delivery{
		Event:   "push",
		Payload: []byte(zenPayload),
	})

	if inner.callCount() != 0 {
		t.Fatalf("expected unsigned delivery to be dropped, got %d calls", inner.callCount())
	}
}

func TestAuthenticateHook_RejectsMalformedSignatures(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	for _, signature := range []string{
		"sha1=zzzz",
		"sha1=abc",
		"sha1",
		"sha1=" + hex.EncodeToString([]byte("short")) + "x",
	} {
		authenticated.Handle(core.Delivery{
			Event:     "push",
			Payload:   []byte(zenPayload),
			Signature: signature,
		})
	}

	if inner.callCount() != 0 {
		t.Fatalf("expected malformed signatures to be dropped, got %d calls", inner.callCount())
	}
}

func TestAuthenticateHook_DigestIsSensitiveToPayloadMutation(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	payload := []byte(zenPayload)
	signature := signSHA1("secret", payload)

	mutated := append([]byte(nil), payload...)
	mutated[0] ^= 0x01
	authenticated.Handle(core.Delivery{
		Event:     "push",
		Payload:   mutated,
		Signature: signature,
	})
	if inner.callCount() != 0 {
		t.Fatalf("expected mutated payload to fail authentication")
	}

	authenticated.Handle(core.Delivery{
		Event:     "push",
		Payload:   payload,
		Signature: signature,
	})
	if inner.callCount() != 1 {
		t.Fatalf("expected untouched payload to authenticate")
	}
}

func TestAuthenticateHook_RoundTripProperty(t *testing.T) {
	secrets := []string{"secret", "another secret", "", "0123456789abcdef0123456789abcdef"}
	payloads := []string{
		"",
		"{}",
		zenPayload,
		`{"action":"opened","number":1347}`,
		"non-json payload \x00\x01\x02",
	}

	for _, secret := range secrets {
		for _, payload := range payloads {
			inner := &recordingHook{}
			authenticated := NewAuthenticateHook(secret, inner)
			authenticated.Handle(core.Delivery{
				Event:     "push",
				Payload:   []byte(payload),
				Signature: signSHA1(secret, []byte(payload)),
			})
			if inner.callCount() != 1 {
				t.Fatalf("expected signature computed with secret %q over %q to authenticate", secret, payload)
			}

			foreign := &recordingHook{}
			crossed := NewAuthenticateHook(secret+"-other", foreign)
			crossed.Handle(core.Delivery{
				Event:     "push",
				Payload:   []byte(payload),
				Signature: signSHA1(secret, []byte(payload)),
			})
			if foreign.callCount() != 0 {
				t.Fatalf("expected signature computed with a different secret to fail")
			}
		}
	}
}

func TestAuthenticateHook_WrapsClosures(t *testing.T) {
	var calls atomic.Int64
	authenticated := NewAuthenticateHook("secret", core.HookFunc(func(delivery core.Delivery) {
		calls.Add(1)
	}))

	authenticated.Handle(core.Delivery{
		Payload:   []byte(zenPayload),
		Signature: signSHA1("secret", []byte(zenPayload)),
	})
	if calls.Load() != 1 {
		t.Fatalf("expected closure hook to run, got %d", calls.Load())
	}
}

func TestAuthenticateHook_CloneVerifiesIndependently(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	cloned, ok := core.CloneHook(authenticated).(*AuthenticateHook)
	if !ok {
		t.Fatalf("expected clone to be an authenticate hook")
	}
	if cloned == authenticated {
		t.Fatalf("expected an independent decorator instance")
	}

	cloned.Handle(core.Delivery{
		Payload:   []byte(zenPayload),
		Signature: signSHA1("secret", []byte(zenPayload)),
	})
	if inner.callCount() != 1 {
		t.Fatalf("expected clone to preserve behavior, got %d calls", inner.callCount())
	}
}

func TestAuthenticateHook_ConcurrentDeliveries(t *testing.T) {
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner)

	payload := []byte(zenPayload)
	valid := signSHA1("secret", payload)
	forged := signSHA1("forged", payload)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			authenticated.Handle(core.Delivery{Payload: payload, Signature: valid})
		}()
		go func() {
			defer wg.Done()
			authenticated.Handle(core.Delivery{Payload: payload, Signature: forged})
		}()
	}
	wg.Wait()

	if inner.callCount() != 32 {
		t.Fatalf("expected exactly the validly signed deliveries to pass, got %d", inner.callCount())
	}
}

type memoryDeliveryLog struct {
	mu      sync.Mutex
	entries []core.DeliveryLogEntry
}

func (l *memoryDeliveryLog) Record(_ context.Context, entry core.DeliveryLogEntry) (core.DeliveryLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return entry, nil
}

func (l *memoryDeliveryLog) List(_ context.Context, _ core.DeliveryLogFilter) ([]core.DeliveryLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.DeliveryLogEntry(nil), l.entries...), nil
}

func TestAuthenticateHook_RecordsOutcomes(t *testing.T) {
	log := &memoryDeliveryLog{}
	inner := &recordingHook{}
	authenticated := NewAuthenticateHook("secret", inner, WithDeliveryLog(log))

	payload := []byte(zenPayload)
	authenticated.Handle(core.Delivery{ID: "d1", Event: "push", Payload: payload, Signature: signSHA1("secret", payload)})
	authenticated.Handle(core.Delivery{ID: "d2", Event: "push", Payload: payload, Signature: signSHA1("forged", payload)})
	authenticated.Handle(core.Delivery{ID: "d3", Event: "push", Payload: payload, Signature: "sha1=zz"})
	authenticated.Handle(core.Delivery{ID: "d4", Event: "push", Payload: payload})

	entries, err := log.List(context.Background(), core.DeliveryLogFilter{})
	if err != nil {
		t.Fatalf("list delivery log: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected four outcome records, got %d", len(entries))
	}
	expected := []struct {
		outcome string
		reason  string
	}{
		{core.DeliveryOutcomeForwarded, ""},
		{core.DeliveryOutcomeRejected, core.RejectReasonDigestMismatch},
		{core.DeliveryOutcomeRejected, core.RejectReasonMalformedSignature},
		{core.DeliveryOutcomeRejected, core.RejectReasonMissingSignature},
	}
	for i, want := range expected {
		if entries[i].Outcome != want.outcome {
			t.Fatalf("entry %d: expected outcome %q, got %q", i, want.outcome, entries[i].Outcome)
		}
		if entries[i].Reason != want.reason {
			t.Fatalf("entry %d: expected reason %q, got %q", i, want.reason, entries[i].Reason)
		}
	}
	if inner.callCount() != 1 {
		t.Fatalf("expected only the valid delivery forwarded, got %d", inner.callCount())
	}
}
