package main

import (
	"os"

	"hyprconf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
