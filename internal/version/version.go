package version

// Overridden at build time:
//
//	go build -ldflags "-X codump/internal/version.Version=1.2.3 -X codump/internal/version.Commit=abc1234"
var (
	Version = "0.1.0-dev"
	Commit  = "unknown"
)

func String() string {
	if Commit != "unknown" && len(Commit) >= 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}
