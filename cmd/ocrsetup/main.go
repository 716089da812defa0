package main

import (
	"os"

	"github.com/ocr-dataentry/ocrsetup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
