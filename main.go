package main

import (
	"os"

	"github.com/haldis/replybot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
