package main

import (
	"os"

	"github.com/flintwinters/jisp/cli"
)

func main() {
	os.Exit(cli.Run())
}
