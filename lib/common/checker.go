package common

// Checker carries the state shared by a chain of `CheckerFunc`s, like the
// transaction under check and the storage to read.
type Checker interface {
	GetFuncs() []CheckerFunc
}

// CheckerDeferFunc is called after every step with the step index and its
// result.
type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

type CheckerFunc func(Checker, ...interface{}) error

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the funcs in order and stops at the first error.
func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) (err error) {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	for i, f := range checker.GetFuncs() {
		err = f(checker, args...)
		deferFunc(i, checker, err)
		if err != nil {
			return
		}
	}

	return nil
}
