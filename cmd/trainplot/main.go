package main

import "github.com/livp123/trainplot/cmd/trainplot/commands"

func main() {
	commands.Execute()
}
