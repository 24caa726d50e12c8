package main

import (
	"github.com/mj1618/inputsource/cmd"
	_ "github.com/mj1618/inputsource/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
