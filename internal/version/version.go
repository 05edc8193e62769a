package version

// Set at build time:
//
//	go build -ldflags "-X traceable-link/internal/version.Version=v1.2.0 -X traceable-link/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   string = "dev"
	GitCommit string = "unknown"
	BuildTime string = "unknown"
)

func GetVersion() string {
	return Version
}

func GetGitCommit() string {
	return GitCommit
}

func GetBuildTime() string {
	return BuildTime
}

func GetFullVersion() string {
	return "traceable-link " + Version + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
}

// LogAttrs returns the build information as slog key/value pairs.
func LogAttrs() []any {
	return []any{"version", Version, "commit", GitCommit, "built", BuildTime}
}
