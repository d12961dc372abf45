package main

import (
	"os"

	"github.com/mr-romero/desmos-code-hub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
