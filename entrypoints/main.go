package main

import (
	"github.com/Laisky/laisky-files-manager/cmd"
)

func main() {
	cmd.Execute()
}
