package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/dxcoder/internal/cli"
	"github.com/ppiankov/dxcoder/internal/exitcode"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitcode.UsageError)
	}
}
