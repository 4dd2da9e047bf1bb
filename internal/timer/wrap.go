package timer

// Call carries the actual arguments of one invocation of a function wrapped
// with WrapCall.
type Call struct {
	Args  []any
	Named map[string]any
}

// bind returns a fresh timer for one call, sharing t's registry and raw task
// name but rendering with that call's arguments.
func (t *Timer) bind(args []any, named map[string]any) *Timer {
	return t.registry.NewWith(t.task, args, named)
}

// Wrap returns a function that times every call of fn under t's task name.
func Wrap(t *Timer, fn func() error) func() error {
	return func() error {
		return t.bind(nil, nil).Do(fn)
	}
}

// Wrap0 is Wrap for functions returning a value.
func Wrap0[R any](t *Timer, fn func() (R, error)) func() (R, error) {
	return func() (R, error) {
		var result R
		err := t.bind(nil, nil).Do(func() (err error) {
			result, err = fn()
			return err
		})
		return result, err
	}
}

// Wrap1 times every call of fn; the argument fills placeholder {0}.
func Wrap1[A, R any](t *Timer, fn func(A) (R, error)) func(A) (R, error) {
	return func(a A) (R, error) {
		var result R
		err := t.bind([]any{a}, nil).Do(func() (err error) {
			result, err = fn(a)
			return err
		})
		return result, err
	}
}

// Wrap2 times every call of fn; the arguments fill placeholders {0} and {1}.
func Wrap2[A, B, R any](t *Timer, fn func(A, B) (R, error)) func(A, B) (R, error) {
	return func(a A, b B) (R, error) {
		var result R
		err := t.bind([]any{a, b}, nil).Do(func() (err error) {
			result, err = fn(a, b)
			return err
		})
		return result, err
	}
}

// Wrap3 times every call of fn; the arguments fill placeholders {0} to {2}.
func Wrap3[A, B, C, R any](t *Timer, fn func(A, B, C) (R, error)) func(A, B, C) (R, error) {
	return func(a A, b B, c C) (R, error) {
		var result R
		err := t.bind([]any{a, b, c}, nil).Do(func() (err error) {
			result, err = fn(a, b, c)
			return err
		})
		return result, err
	}
}

// WrapCall times every call of fn, rendering the task name with the call's
// positional and named arguments.
func WrapCall[R any](t *Timer, fn func(Call) (R, error)) func(Call) (R, error) {
	return func(call Call) (R, error) {
		var result R
		err := t.bind(call.Args, call.Named).Do(func() (err error) {
			result, err = fn(call)
			return err
		})
		return result, err
	}
}
