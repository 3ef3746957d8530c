package main

import (
	"os"

	"github.com/sommystore/storefront/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logger.Error("storefront", "error", err)
		os.Exit(1)
	}
}
