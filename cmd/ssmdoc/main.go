package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("ssmdoc failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
