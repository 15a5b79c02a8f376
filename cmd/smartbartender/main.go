package main

import (
	"os"

	"smartbartender/cmd/smartbartender/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
