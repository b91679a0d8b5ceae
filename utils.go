package petrel

// helper for launching goroutines with the appropriate panic handler. The
// panic is always recovered and logged; a creation goroutine must not be able
// to take the broker down.
func withRecover(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			Logger.Printf("petrel: recovered from panic: %v", err)
			if PanicHandler != nil {
				PanicHandler(err)
			}
		}
	}()

	fn()
}
