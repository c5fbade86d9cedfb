// Package goroutine launches background work that must never take the
// process down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/folio-inc/folio/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs (instead of propagating) a panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is meant to be deferred at the top of a goroutine body.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
