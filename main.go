package main

import (
	"github.com/tallyhq/gcptally/cmd"
)

func main() {
	cmd.Execute()
}
