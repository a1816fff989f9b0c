package version

// Populated at build time via -ldflags.
var (
	Version = "Development"
	Commit  = "none"
)

func GetVersion() string {
	return Version
}

func GetCommit() string {
	return Commit
}
