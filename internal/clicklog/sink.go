package clicklog

import (
	"context"
	"traceable-link/internal/models"
)

// Sink is a destination for click events.
type Sink interface {
	Name() string
	Write(ctx context.Context, event models.ClickEvent) error
	Close() error
}

// clickRecord is the serialized shape shared by the file and redis sinks.
type clickRecord struct {
	ID        string `json:"id"`
	Sop       string `json:"sop"`
	SopName   string `json:"sopName"`
	Target    string `json:"target"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func newClickRecord(event models.ClickEvent) clickRecord {
	return clickRecord{
		ID:        event.ID,
		Sop:       event.Sop,
		SopName:   event.SopName,
		Target:    event.Target,
		Email:     event.Email,
		Name:      event.Name,
		Date:      event.FormattedDate(),
		ClientIP:  event.ClientIP,
		UserAgent: event.UserAgent,
		RequestID: event.RequestID,
	}
}
