package main

import (
	"os"

	"github.com/kwebdev/pagegen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
