package board

// Panics with `msg` if `cond` is false. Violations are programming
// errors, never runtime conditions.
func assert(cond bool, msg string) {
	if asserts && !cond {
		panic("board: " + msg)
	}
}

func assertValid(b Board) {
	assert(b.Valid(), "padding bits are set")
}
