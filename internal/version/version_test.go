package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	original := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = original[0], original[1], original[2] })

	Version, GitCommit, BuildTime = "v1.2.0", "abc1234", "2026-01-02T03:04:05Z"

	assert.Equal(t, "v1.2.0", GetVersion())
	assert.Equal(t, "traceable-link v1.2.0 (commit: abc1234, built: 2026-01-02T03:04:05Z)", GetFullVersion())
	assert.Equal(t, []any{"version", "v1.2.0", "commit", "abc1234", "built", "2026-01-02T03:04:05Z"}, LogAttrs())
}
