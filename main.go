package main

import (
	"os"

	"github.com/fragmentid/fragment-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
