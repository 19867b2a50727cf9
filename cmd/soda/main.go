package main

import (
	"os"

	"github.com/kievzenit/soda/cmd/soda/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
