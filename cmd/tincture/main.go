// Tincture - A perceptual colour palette interpolator
//
// Tincture blends colours in sRGB, Oklab, CAM16 and HCT, mixes them
// subtractively like paint, and builds tonal ramps from a single seed.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/tincture/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
