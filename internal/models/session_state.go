package models

// SessionStateKind enumerates where a visitor is in the login flow.
type SessionStateKind int

const (
	// SessionAnonymous has neither a user nor a pending link.
	SessionAnonymous SessionStateKind = iota
	// SessionAwaitingCallback has a pending link and is waiting on the identity provider.
	SessionAwaitingCallback
	// SessionAuthenticated has a user, and optionally a pending link.
	SessionAuthenticated
)

func (k SessionStateKind) String() string {
	switch k {
	case SessionAnonymous:
		return "anonymous"
	case SessionAwaitingCallback:
		return "awaiting_callback"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionState is the tagged view of a visitor session. Pending is set for
// SessionAwaitingCallback and may be set for SessionAuthenticated; User is set only
// for SessionAuthenticated.
type SessionState struct {
	Kind    SessionStateKind
	Pending *PendingLink
	User    *User
}

// DeriveSessionState builds the tagged state from the values present in a session.
func DeriveSessionState(pending *PendingLink, user *User) SessionState {
	switch {
	case user != nil:
		return SessionState{Kind: SessionAuthenticated, Pending: pending, User: user}
	case pending != nil:
		return SessionState{Kind: SessionAwaitingCallback, Pending: pending}
	default:
		return SessionState{Kind: SessionAnonymous}
	}
}
