// Package webhook receives and verifies account-lifecycle events pushed by
// Clerk, our identity provider.
//
// DELIVERY MODEL:
// Clerk does not call us synchronously when an account is created — it
// delivers a signed webhook, possibly more than once, possibly out of order.
// Our job here splits in two:
//
//	Verifier   — prove the payload really came from Clerk (shared secret)
//	Dispatcher — route the verified event to the right handler
//
// Clerk signs webhooks with the svix scheme. The signed content is the
// literal string "{msg_id}.{timestamp}.{body}" and the MAC is HMAC-SHA256
// under a shared secret that Clerk shows once in its dashboard, prefixed
// "whsec_" and base64-encoded. The signature header can carry several
// space-separated candidates (for secret rotation), each "v1,<base64 mac>".
//
// Verification is pure: no storage access, no side effects. A payload that
// fails here must never reach the dispatcher.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

// The three svix headers Clerk sends with every delivery.
// All three are required — a delivery missing any of them is rejected
// before we even look at the signature.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// timestampTolerance bounds how far a delivery's timestamp may drift from
// our clock, in either direction. Anything older is treated as a replay,
// anything newer as a forged timestamp.
const timestampTolerance = 5 * time.Minute

// Verifier checks webhook deliveries against the shared signing secret.
type Verifier struct {
	secret []byte

	// now is swappable in tests so we can sign with controlled timestamps.
	now func() time.Time
}

// NewVerifier creates a Verifier from the "whsec_..." secret string.
//
// The secret must be configured before the server starts — an empty or
// undecodable secret is a configuration error, not a per-request one.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("webhook: signing secret must not be empty")
	}

	// The usable key is the base64 payload after the "whsec_" prefix.
	encoded := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("webhook: decoding signing secret: %w", err)
	}

	return &Verifier{secret: key, now: time.Now}, nil
}

// Verify authenticates a raw delivery and parses it into an Event.
//
// Checks, in order:
//  1. All three svix headers present
//  2. Timestamp parses and is within the tolerance window (replay rejection)
//  3. At least one "v1," signature matches HMAC-SHA256(secret, id.ts.body)
//
// Every failure path returns apperror.ErrWebhookVerification so the handler
// can respond 400 without distinguishing forgery from malformed input —
// giving attackers a single, uninformative failure mode.
func (v *Verifier) Verify(body []byte, headers http.Header) (*Event, error) {
	msgID := headers.Get(HeaderID)
	timestamp := headers.Get(HeaderTimestamp)
	signature := headers.Get(HeaderSignature)

	if msgID == "" || timestamp == "" || signature == "" {
		return nil, apperror.WebhookVerification("missing svix headers")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, apperror.WebhookVerification("invalid svix timestamp")
	}
	age := v.now().Sub(time.Unix(ts, 0))
	if age > timestampTolerance || age < -timestampTolerance {
		return nil, apperror.WebhookVerification("svix timestamp outside tolerance")
	}

	expected := v.sign(msgID, timestamp, body)

	// The header may list several versioned signatures separated by spaces,
	// e.g. "v1,abc= v1,def=". Accept if ANY v1 entry matches.
	for _, candidate := range strings.Fields(signature) {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		// hmac.Equal is constant-time — never compare MACs with ==,
		// timing differences leak how many leading bytes matched.
		if hmac.Equal(decoded, expected) {
			return parseEvent(body)
		}
	}

	return nil, apperror.WebhookVerification("signature mismatch")
}

// sign computes the svix MAC over "{id}.{timestamp}.{body}".
func (v *Verifier) sign(msgID, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(body)
	return mac.Sum(nil)
}
