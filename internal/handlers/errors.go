package handlers

import "errors"

var (
	ErrMissingTarget    = errors.New("missing target")
	ErrMalformedTarget  = errors.New("malformed target")
	ErrTargetNotAllowed = errors.New("target host not allowed")

	ErrOauthStateMismatch = errors.New("oauth state mismatch")
	ErrMissingCode        = errors.New("missing authorization code")
)
