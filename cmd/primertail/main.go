// cmd/primertail/main.go
package main

import (
	"primertail/internal/app"
	"primertail/internal/appshell"
)

func main() { appshell.Main(app.Run) }
