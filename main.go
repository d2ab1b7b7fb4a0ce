package main

import (
	"os"

	"github.com/abhisek/bs2tutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
