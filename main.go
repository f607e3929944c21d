package main

import (
	"os"

	"github.com/PolarWolf314/projscan/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		cmd.Logger.Errorf("%v", err)
		os.Exit(1)
	}
}
