// folio - Portfolio content validator and static site generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/folio

package main

import (
	"os"

	"github.com/ariel-frischer/folio/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
