// Command foldertree is the CLI and REPL harness around
// pkg/foldertree's concurrent directory tree.
package main

import "github.com/foldertree/foldertree/cmd/foldertree/cmd"

func main() {
	cmd.Execute()
}
