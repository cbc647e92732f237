package main

import "xuanji/internal/cli"

func main() {
	cli.Execute()
}
