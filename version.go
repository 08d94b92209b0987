package pendant

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of this module, as written in the VERSION file.
var Version = strings.TrimSpace(version)
