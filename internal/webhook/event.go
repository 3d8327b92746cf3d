package webhook

import (
	"encoding/json"
	"fmt"
)

// Event is a verified webhook delivery, discriminated by Type.
//
// Data is kept as raw JSON because its shape depends on Type — the
// dispatcher decodes it against the concrete payload struct only for
// event types it actually handles.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserCreatedData is the payload of a "user.created" event — the subset of
// Clerk's user object we persist. Clerk returns more fields; we only
// unmarshal what we need, the rest is ignored by encoding/json.
type UserCreatedData struct {
	ID             string         `json:"id"` // Clerk subject, e.g. "user_2abc..."
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
}

// EmailAddress is one entry of the email_addresses array. The first entry
// is the account's primary address.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first listed address, or "" if Clerk sent none.
func (d *UserCreatedData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

func parseEvent(body []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("webhook: parsing event body: %w", err)
	}
	return &evt, nil
}
