package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"
	"traceable-link/internal/utils"
)

// RedactEmail is used to redact emails (mostly for logs)
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	localRunes := []rune(parts[0])
	domain := parts[1]

	if len(localRunes) <= 2 {
		return strings.Repeat("*", len(localRunes)) + "@" + domain
	}

	first := string(localRunes[0])
	last := string(localRunes[len(localRunes)-1])
	middle := strings.Repeat("*", len(localRunes)-2)

	return first + middle + last + "@" + domain
}

// resolveTarget percent-decodes a stored target once more and checks that it is an absolute
// http(s) URL whose host is in allowedHosts (any host when allowedHosts is empty).
func resolveTarget(raw string, allowedHosts []string) (string, error) {
	if raw == "" {
		return "", ErrMissingTarget
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedTarget, err)
	}

	target, err := url.Parse(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedTarget, err)
	}

	if !target.IsAbs() || target.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrMalformedTarget, decoded)
	}

	if target.Scheme != "http" && target.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrMalformedTarget, target.Scheme)
	}

	if len(allowedHosts) > 0 && !utils.IsStringInSliceFold(target.Hostname(), allowedHosts) {
		return "", fmt.Errorf("%w: %s", ErrTargetNotAllowed, target.Hostname())
	}

	return decoded, nil
}

// clickFingerprint keys the dedup cache on who clicked which link, never on when.
func clickFingerprint(secret string, event models.ClickEvent) string {
	mac := hmac.New(sha256.New, []byte(secret))
	for _, part := range []string{event.Email, event.Sop, event.SopName, event.Target} {
		mac.Write([]byte(part))
		mac.Write([]byte{0})
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// redirectToFallback sends the visitor to tracking.fallback_url when one is configured.
func redirectToFallback(ctx *middlewares.AppContext) bool {
	if ctx.Config.Tracking.FallbackURL == "" {
		return false
	}
	ctx.Redirect(ctx.Config.Tracking.FallbackURL, http.StatusFound)
	return true
}
