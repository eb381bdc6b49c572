package main

import "github.com/mektycoon/mekgold/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
