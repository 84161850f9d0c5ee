package main

import "github.com/avasilkov/capfetch/internal/cli"

func main() {
	cli.Main()
}
