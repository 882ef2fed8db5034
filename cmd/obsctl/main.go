package main

import (
	"os"

	"github.com/JamesPrial/obsctl/internal/cli"
)

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=...".
var (
	version   = "dev"
	commit    = ""
	buildTime = ""
)

func main() {
	if err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, BuildTime: buildTime}); err != nil {
		os.Exit(1)
	}
}
