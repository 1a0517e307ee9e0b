package exception

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
)

// SafeGo runs fn in a goroutine and logs instead of crashing on panic.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}

// SafeGoWithPanic is SafeGo for goroutines the process cannot live without.
func SafeGoWithPanic(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				report(name, r)
				os.Exit(1)
			}
		}()
		fn()
	}()
}

// Recover must be deferred directly.
func Recover(name string) {
	if r := recover(); r != nil {
		report(name, r)
	}
}

func report(name string, r interface{}) {
	monitoring.IncreasePanicCount()
	logx.Error("PANIC", "Panic in: ", name, " ", r, "\n", string(debug.Stack()))
}
