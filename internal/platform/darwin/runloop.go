//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>

static void keepalive_cb(CFRunLoopTimerRef timer, void *info) {}

// Runs the main run loop for at most seconds. Returns 1 when the loop has no
// sources to service. A far-future timer keeps the loop alive so work
// dispatched to the main queue is serviced before anything else is scheduled.
static int run_main_loop(double seconds) {
    static CFRunLoopTimerRef keepalive = NULL;
    if (keepalive == NULL) {
        keepalive = CFRunLoopTimerCreate(kCFAllocatorDefault,
            CFAbsoluteTimeGetCurrent() + 1e9, 1e9, 0, 0, keepalive_cb, NULL);
        CFRunLoopAddTimer(CFRunLoopGetMain(), keepalive, kCFRunLoopDefaultMode);
    }
    SInt32 res = CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
    return res == kCFRunLoopRunFinished ? 1 : 0;
}

static void stop_main_loop(void) {
    CFRunLoopStop(CFRunLoopGetMain());
}
*/
import "C"
import (
	"context"
	"errors"
	"time"
)

// RunLoop implements platform.RunLoop by driving the main CFRunLoop, where
// both input source notifications and HID callbacks are delivered.
type RunLoop struct{}

// NewRunLoop creates a new main run loop driver.
func NewRunLoop() *RunLoop {
	return &RunLoop{}
}

// Run services the main run loop until ctx is done. It must be called from
// the main goroutine, which this package locks to the main thread.
func (r *RunLoop) Run(ctx context.Context) error {
	if !isMainThread() {
		return errors.New("run loop must be driven from the main thread")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			C.stop_main_loop()
		case <-done:
		}
	}()

	for ctx.Err() == nil {
		if C.run_main_loop(1.0) == 1 {
			// Nothing is scheduled yet; avoid spinning.
			time.Sleep(100 * time.Millisecond)
		}
	}
	return nil
}
