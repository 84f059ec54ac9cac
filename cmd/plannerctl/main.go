package main

import (
	"fmt"
	"os"

	"weekly-planner/backend/internal/cli"
)

func main() {
	app := &cli.App{}
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}
}
