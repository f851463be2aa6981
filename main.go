package main

import "rasporedctl/cmd"

func main() {
	cmd.Execute()
}
