// Command bitpart-bench demonstrates and benchmarks the bitpart index
// against a brute-force linear scan over the bundled sample datasets.
package main

import (
	"fmt"
	"os"

	"github.com/cerplabs/bitpart/cmd/bitpart-bench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
