// Command addressbook manages a local contact directory.
package main

import (
	"os"

	"github.com/mesh-intelligence/addressbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
