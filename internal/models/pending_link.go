package models

// PendingLink holds the tracking parameters of the link a visitor followed while the
// login round-trip is in flight. Values are kept exactly as they arrived in the query.
type PendingLink struct {
	Sop     string `json:"sop"`
	SopName string `json:"sopName"`
	Target  string `json:"target"`
}
