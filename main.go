package main

import (
	"github.com/pantrylink/pantrylink/cmd"
	"github.com/pantrylink/pantrylink/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
