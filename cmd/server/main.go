// Package main implements the AI Task Helper API server: task CRUD with
// language-model classification, runtime provider configuration and
// database migrations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
