package main

import "prunderground/cmd"

func main() {
	cmd.Execute()
}
