// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the minibadge CLI.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	root := newRootCmd(viper.New())

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
