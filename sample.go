package calltrace

// Sample traces a helloArgs call with positional and keyword arguments and returns its result
func Sample(t *Tracer) int {
	helloArgs := DecorateWith(t, func(kwargs Kwargs, args ...interface{}) int {
		t.emit("In helloArgs")
		t.emit("args has:")
		t.emitStructured(args)
		t.emit("kwargs has:")
		t.emitStructured(kwargs)
		t.PrintCurStack()
		t.emit("Closing helloArgs")
		return 0
	}, WithName("helloArgs"))

	result := helloArgs(Kwargs{"abc": "123"}, 1, 2, 3)
	if t.config.Debug() {
		if result == 0 {
			t.emit("Returns from the test function are correct")
		} else {
			t.emit("Returns from the test function are NOT correct")
		}
	}
	return result
}
