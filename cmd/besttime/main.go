package main

import (
	"os"

	"github.com/rewired-gh/besttime/internal/logger"
)

func main() {
	err := newRootCmd().Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
