package main

import (
	"os"

	"github.com/rustyeddy/fxflow/cmd/fxflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
