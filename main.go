package main

import (
	"os"

	"github.com/abhisek/curricula/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
