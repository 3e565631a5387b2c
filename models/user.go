// ABOUTME: User profile model as served by the upstream profile API
// ABOUTME: Date type tolerates both ISO dates and full timestamps

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// User is the authenticated principal's profile. It is fetched per request and
// never stored locally.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"is_active"`
	DateJoined *Date     `json:"date_joined,omitempty"`
	DateBirth  *Date     `json:"date_birth,omitempty"`
	Contacts   []Contact `json:"contacts,omitempty"`
}

// DisplayName returns the name to greet the user with
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Contact is a user contact entry (email, phone, WhatsApp)
type Contact struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date wraps time.Time and accepts the date and datetime shapes the upstream emits
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date format: %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}
