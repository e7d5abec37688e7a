package main

import (
	"os"

	"github.com/xinshuoliu/Finance/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
