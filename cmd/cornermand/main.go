// Command cornermand runs the cornerman session daemon in the foreground.
// It is equivalent to `cornerman daemon run` with the default configuration
// lookup and exists so service managers can start the daemon without the CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"cornerman/internal/config"
	"cornerman/internal/daemonrun"
)

func main() {
	cfg, _, _, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cornermand: %v\n", err)
		os.Exit(1)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "cornermand: %v\n", err)
		os.Exit(1)
	}
}
