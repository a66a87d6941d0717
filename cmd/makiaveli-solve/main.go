package main

import (
	"os"

	"makiaveli/cmd/makiaveli-solve/cmd"
)

// main proxies to the cobra root command, mirroring the teacher's thin
// cmd/nakama/main.go proxy into its ports package.
func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
