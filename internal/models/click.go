package models

import "time"

// ClickEvent is the record emitted for every forwarded visit.
type ClickEvent struct {
	ID        string    `json:"id"`
	Sop       string    `json:"sop"`
	SopName   string    `json:"sopName"`
	Target    string    `json:"target"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// ClickDateLayout renders Date the way browsers render Date.toISOString.
const ClickDateLayout = "2006-01-02T15:04:05.000Z07:00"

// NewClickEvent combines the pending link and user into an event stamped with now.
// A nil pending link yields empty tracking fields.
func NewClickEvent(id string, pending *PendingLink, user *User, now time.Time) ClickEvent {
	event := ClickEvent{
		ID:   id,
		Date: now.UTC(),
	}

	if pending != nil {
		event.Sop = pending.Sop
		event.SopName = pending.SopName
		event.Target = pending.Target
	}

	if user != nil {
		event.Email = user.Email
		event.Name = user.Name
	}

	return event
}

// FormattedDate returns Date in ClickDateLayout.
func (e ClickEvent) FormattedDate() string {
	return e.Date.UTC().Format(ClickDateLayout)
}
