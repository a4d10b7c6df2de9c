package main

import "cody-schema/internal/cli"

func main() {
	cli.Execute()
}
