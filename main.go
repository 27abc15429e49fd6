package main

import "github.com/jaytlang-hopkins/freefocus/cmd"

func main() {
	cmd.Execute()
}
