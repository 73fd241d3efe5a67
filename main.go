package main

import (
	"fmt"
	"os"

	"github.com/kilianp07/partminder/cmd"
	"github.com/kilianp07/partminder/core/errs"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg, ok := errs.UserMessage(err); ok {
			fmt.Fprintln(os.Stderr, msg)
		}
		fmt.Fprintln(os.Stderr, "partminder:", err)
		os.Exit(1)
	}
}
