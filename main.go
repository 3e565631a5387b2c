// ABOUTME: Entry point for the politicsystem binary
// ABOUTME: Dispatches to the serve command and the client commands

package main

import (
	"fmt"
	"os"

	"github.com/edududs/PoliticSystem/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
