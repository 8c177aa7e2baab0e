// Package buildinfo exposes version data injected at link time.
//
//	go build -ldflags "-X github.com/dmitrijs2005/deployhq/internal/buildinfo.Version=1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	BuildTime = "N/A"
	Commit    = "N/A"
)

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildTime)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
