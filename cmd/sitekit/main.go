package main

import (
	"os"

	"github.com/waste3d/sitekit/cmd/sitekit/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
