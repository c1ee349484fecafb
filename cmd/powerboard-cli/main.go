package main

import "powerboard/cmd/powerboard-cli/cmd"

func main() {
	cmd.Execute()
}
