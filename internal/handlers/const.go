package handlers

const (
	EntryPath    = "/"
	CallbackPath = "/auth/callback"
	ForwardPath  = "/go"
)

const (
	invalidTargetMessage        = "Invalid target"
	authenticationFailedMessage = "Authentication failed"
)
