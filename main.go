package main

import "github.com/notargets/srjet/cmd"

func main() {
	cmd.Execute()
}
