// Command metaloader renders and previews the metaball loaders.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/metaloader/cmd/metaloader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
