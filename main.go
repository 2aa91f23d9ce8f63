package main

import (
	"os"

	"github.com/melih-ucgun/decree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
