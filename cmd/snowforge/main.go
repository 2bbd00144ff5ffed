package main

import (
	"os"

	"github.com/anglinb/snowforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
