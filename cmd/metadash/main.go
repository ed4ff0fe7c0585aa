// Command metadash explores, reports on and serves a CORD-19 style
// metadata CSV.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
