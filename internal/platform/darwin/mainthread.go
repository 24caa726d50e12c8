//go:build darwin && cgo

package darwin

/*
#include <dispatch/dispatch.h>
#include <pthread.h>
#include <stdint.h>

extern void goRunOnMain(uintptr_t handle);

static void main_trampoline(void *ctx) {
    goRunOnMain((uintptr_t)ctx);
}

static int on_main_thread(void) {
    return pthread_main_np();
}

static void dispatch_main_sync(uintptr_t handle) {
    dispatch_sync_f(dispatch_get_main_queue(), (void *)handle, main_trampoline);
}
*/
import "C"
import "runtime/cgo"

// isMainThread reports whether the caller runs on the process main thread.
// Only the main goroutine can, since init locks it there.
func isMainThread() bool {
	return C.on_main_thread() != 0
}

// onMain runs fn on the main thread and waits for it to return. TIS property
// reads abort off the main thread, so every TIS call goes through here.
// From any other goroutine the main goroutine must be inside RunLoop.Run.
func onMain(fn func()) {
	if isMainThread() {
		fn()
		return
	}
	h := cgo.NewHandle(fn)
	defer h.Delete()
	C.dispatch_main_sync(C.uintptr_t(h))
}
