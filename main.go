// SPDX-License-Identifier: MIT
package main

import (
	"onset/cmd"
	"onset/internal/log"
	"onset/pkg/build"
)

func main() {
	// Development builds carry no ldflags; keep the defaults.
	if err := build.Initialize(); err != nil {
		log.Debugf("build: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
