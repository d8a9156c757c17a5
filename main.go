package main

import (
	"os"

	"github.com/khalifa1337/newsboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
