package main

import (
	"fmt"
	"os"

	"codump/internal/codumpcli"
)

func main() {
	root := codumpcli.NewRootCommand()
	root.SetArgs(codumpcli.RewriteArgsForImplicitDump(root, os.Args[1:]))
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
