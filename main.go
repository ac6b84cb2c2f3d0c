package main

import "fryc/cmd"

func main() {
	cmd.Execute()
}
