package main

import (
	"os"

	"github.com/backbee/bbinstall/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
