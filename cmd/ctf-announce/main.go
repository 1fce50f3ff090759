package main

import "github.com/ctfwatch/ctf-announce/internal/cli"

func main() {
	cli.Execute()
}
