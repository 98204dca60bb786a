package main

import "github.com/theirongolddev/brgy/cmd"

func main() {
	cmd.Execute()
}
