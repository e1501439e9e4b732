package main

import (
	"fmt"
	"runtime/debug"
)

// version is overridden at release time with
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

// Version implements the `version` subcommand.
type Version struct{}

func (c *Version) Execute([]string) error {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	fmt.Printf("otezip %s\n", v)
	return nil
}
