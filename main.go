package main

import (
	"os"

	"github.com/bitdittowit/autoduo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
