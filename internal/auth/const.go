package auth

type SessionKey string

var (
	SessionKeyUserData          SessionKey = "user_data"
	SessionKeyPendingLink       SessionKey = "pending_link"
	SessionKeyOauthState        SessionKey = "oauth_state"
	SessionKeyOauthCodeVerifier SessionKey = "oauth_code_verifier"
)
