package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
