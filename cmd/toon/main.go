package main

import (
	"os"

	"github.com/tooncodec/toon/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
