package main

import (
	"fmt"
	"os"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "novacore: %v\n", err)
		os.Exit(constant.ExitUnexpected)
	}
}
