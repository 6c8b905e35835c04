// cmd/primerscore/main.go
package main

import (
	"primerscore/internal/appshell"
	"primerscore/internal/cli"
)

func main() { appshell.Main(cli.Run) }
