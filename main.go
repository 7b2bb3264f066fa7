package main

import (
	"context"
	"os"

	"github.com/containerlens/containerlens/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	if version != "" {
		cli.SetVersionInfo(version, commit, date)
	}

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
