package main

import (
	"os"

	"github.com/yclin/tubebrief/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
