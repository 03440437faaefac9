package main

import (
	"os"

	"tareas/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], cli.Env{}))
}
