// Package main is the entry point for the fightsongs CLI application.
//
// Build information is set with -ldflags on the internal/version package:
//
//	go build -ldflags "-X github.com/wexinc/fightsongs/internal/version.Version=v1.0.0" ./cmd/fightsongs
package main

import (
	"github.com/wexinc/fightsongs/cmd/fightsongs/cmd"
)

func main() {
	cmd.Execute()
}
