package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folio-inc/folio/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	ran := false
	SafeGo(logger.NewNopLogger(), "test", func() {
		defer wg.Done()
		ran = true
		panic("boom")
	})

	wg.Wait()
	assert.True(t, ran)
}

func TestRecover_NoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover(logger.NewNopLogger(), "quiet")
	})
}
