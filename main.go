package main

import (
	"os"

	"github.com/careertoolkit/resume-analyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
