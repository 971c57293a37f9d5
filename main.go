package main

import (
	"os"

	"github.com/mahyarmirrashed/qoi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
