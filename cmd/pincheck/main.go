package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := buildRootCommand().Execute(); err != nil {
		var weak errWeak
		if errors.As(err, &weak) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
