//go:build darwin && cgo

package darwin

import (
	"context"
	"os"
	"sync"
	"testing"
)

// TestMain keeps the main goroutine in the run loop so TIS calls made from
// test goroutines can be dispatched to the main thread.
func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	code := make(chan int, 1)
	go func() {
		code <- m.Run()
		cancel()
	}()
	NewRunLoop().Run(ctx)
	os.Exit(<-code)
}

func TestOnMain_RunsOnMainThread(t *testing.T) {
	if isMainThread() {
		t.Fatal("test goroutine should not be on the main thread")
	}
	var onMainThread bool
	onMain(func() { onMainThread = isMainThread() })
	if !onMainThread {
		t.Error("onMain ran fn off the main thread")
	}
}

func TestManager_ConcurrentCallersOffMainThread(t *testing.T) {
	m := NewInputSourceManager()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.CurrentKeyboardInputSource(); err != nil {
				errs <- err
				return
			}
			if _, err := m.InstalledInputSources(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
