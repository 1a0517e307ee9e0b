package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/orion/cmd"
	"github.com/mezonai/orion/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("ORION CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
