// Package main is the entry point for sqlconsole, a console for a remote
// SQL-over-HTTP endpoint.
package main

import (
	"sqlconsole/cli/cmd"
)

func main() {
	cmd.Execute()
}
