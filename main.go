package main

import (
	"github.com/code-harsh006/new-backend/cmd"
)

func main() {
	cmd.Execute()
}
