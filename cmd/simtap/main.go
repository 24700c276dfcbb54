package main

import "github.com/devicelab-dev/simtap/pkg/cli"

func main() {
	cli.Execute()
}
