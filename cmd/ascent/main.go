package main

import "github.com/ascentlabs/ascent/cli/cmd"

func main() {
	cmd.Execute()
}
