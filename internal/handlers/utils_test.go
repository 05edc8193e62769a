package handlers

import (
	"testing"
	"traceable-link/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		allowedHosts []string
		expected     string
		expectedErr  error
	}{
		{name: "encoded target", raw: "https%3A%2F%2Fcoda.io%2Fd%2Fxyz", expected: "https://coda.io/d/xyz"},
		{name: "already decoded target", raw: "https://coda.io/d/xyz", expected: "https://coda.io/d/xyz"},
		{name: "plus is kept", raw: "https://example.com/a+b", expected: "https://example.com/a+b"},
		{name: "empty target", raw: "", expectedErr: ErrMissingTarget},
		{name: "bad escape", raw: "https%3A%2F%2Fcoda.io%ZZ", expectedErr: ErrMalformedTarget},
		{name: "relative target", raw: "%2Fadmin", expectedErr: ErrMalformedTarget},
		{name: "javascript scheme", raw: "javascript:alert(1)", expectedErr: ErrMalformedTarget},
		{name: "mailto scheme", raw: "mailto:a@b.com", expectedErr: ErrMalformedTarget},
		{name: "allowed host", raw: "https://docs.coda.io/x", allowedHosts: []string{"docs.coda.io"}, expected: "https://docs.coda.io/x"},
		{name: "allowed host with port", raw: "https://coda.io:8443/x", allowedHosts: []string{"coda.io"}, expected: "https://coda.io:8443/x"},
		{name: "subdomain is not the listed host", raw: "https://evil.coda.io/x", allowedHosts: []string{"coda.io"}, expectedErr: ErrTargetNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolveTarget(tt.raw, tt.allowedHosts)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestClickFingerprint(t *testing.T) {
	event := models.ClickEvent{Email: "a@b.com", Sop: "abc123", SopName: "Weekly", Target: "https://coda.io"}

	base := clickFingerprint("secret", event)
	assert.Len(t, base, 64)

	later := event
	later.ID = "other-id"
	assert.Equal(t, base, clickFingerprint("secret", later), "id and date are not part of the fingerprint")

	otherUser := event
	otherUser.Email = "c@d.com"
	assert.NotEqual(t, base, clickFingerprint("secret", otherUser))

	assert.NotEqual(t, base, clickFingerprint("another-secret", event))

	shifted := models.ClickEvent{Email: "a@b.com", Sop: "abc", SopName: "123Weekly", Target: "https://coda.io"}
	assert.NotEqual(t, base, clickFingerprint("secret", shifted))
}

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "a*****e@example.com", RedactEmail("adaline@example.com"))
	assert.Equal(t, "**@b.com", RedactEmail("ab@b.com"))
	assert.Equal(t, "", RedactEmail("not-an-email"))
}
