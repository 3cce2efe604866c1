package main

import (
	"os"

	"github.com/gzhole/modelgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
