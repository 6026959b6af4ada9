package main

import (
	"context"
	"os"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
