package main

import "github.com/metal-toolbox/rackview/cmd"

func main() {
	cmd.Execute()
}
