package orion

import "fmt"

// Handle panics if err is not nil. The panic message is the formatted
// description followed by the error.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}

// Assert panics with the formatted description if cond does not hold.
func Assert(cond bool, desc string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(desc, args...))
	}
}
