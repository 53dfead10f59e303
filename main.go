package main

import "github.com/rionatty/ampower-visualize/cmd"

func main() {
	cmd.Execute()
}
