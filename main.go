package main

import "github.com/blogem/lanauthgate/cli"

func main() {
	cli.Execute()
}
