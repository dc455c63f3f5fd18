package main

import (
	"fmt"
	"os"
	"powerchess/ui"
)

func main() {
	if err := ui.RunPowerChess(); err != nil {
		fmt.Fprintf(os.Stderr, "powerchess: %v\n", err)
		os.Exit(1)
	}
}
