package main

import "hostdash/internal/cli"

func main() {
	cli.Execute()
}
