package main

import "shiftblocks/internal/cli"

func main() {
	cli.Execute()
}
