package main

import "tracksep/cmd"

func main() {
	cmd.Execute()
}
