package common

// Set via -ldflags at build time.
var (
	version = "dev"
	build   = "local"
	commit  = "unknown"
)

func GetVersion() string { return version }
func GetBuild() string   { return build }
func GetCommit() string  { return commit }
