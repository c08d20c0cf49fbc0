package main

import (
	"os"

	"github.com/MKhiriev/typedconf/cmd/typedconf/cmd"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd.SetBuildInfo(buildVersion, buildDate, buildCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
