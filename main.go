package main

import (
	"os"

	"github.com/Python-AI-Solutions/entra-validation-app/cli"
	"github.com/Python-AI-Solutions/entra-validation-app/version"
)

// Set via ldflags at build time.
var (
	buildVersion = ""
	buildDate    = ""
	gitCommit    = ""
)

func main() {
	info := version.New("entra-validate")
	if buildVersion != "" {
		info.Version = buildVersion
	}
	if buildDate != "" {
		info.BuildDate = buildDate
	}
	if gitCommit != "" {
		info.GitCommit = gitCommit
	}

	if err := cli.Execute(info); err != nil {
		os.Exit(1)
	}
}
