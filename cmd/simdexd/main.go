package main

import (
	"os"

	"github.com/simdex-labs/simdex/cmd/simdexd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
