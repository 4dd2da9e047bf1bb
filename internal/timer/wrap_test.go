package timer

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTimesEveryCall(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	calls := 0
	fn := Wrap(r.New("tick"), func() error {
		calls++
		clock.Advance(time.Second)
		return nil
	})

	require.NoError(t, fn())
	require.NoError(t, fn())

	assert.Equal(t, 2, calls)
	assert.Len(t, r.Samples("tick"), 2)
	assert.Len(t, logs.messages(), 4)
}

func TestWrap0ReturnsValue(t *testing.T) {
	r, _ := newTestRegistry()

	fn := Wrap0(r.New("answer"), func() (int, error) { return 42, nil })
	got, err := fn()

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestWrap1RendersArgument(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	upper := Wrap1(r.New("Upper {0}"), func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})

	got, err := upper("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", got)

	_, err = upper("def")
	require.NoError(t, err)

	msgs := logs.messages()
	assert.Equal(t, "----STARTED Upper abc", msgs[0])
	assert.Equal(t, "----STARTED Upper def", msgs[2])
	assert.Equal(t, []string{"Upper {0}"}, r.Tasks())
	assert.Len(t, r.Samples("Upper {0}"), 2)
}

func TestWrap2AndWrap3RenderArguments(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	add := Wrap2(r.New("Add {0} and {1}"), func(a, b int) (int, error) { return a + b, nil })
	sum, err := add(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, sum)

	join := Wrap3(r.New("Join {}-{}-{}"), func(a, b, c string) (string, error) { return a + b + c, nil })
	joined, err := join("x", "y", "z")
	require.NoError(t, err)
	assert.Equal(t, "xyz", joined)

	msgs := logs.messages()
	assert.Equal(t, "----STARTED Add 1 and 2", msgs[0])
	assert.Equal(t, "----STARTED Join x-y-z", msgs[2])
}

func TestWrapCallRendersNamedArguments(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	fn := WrapCall(r.New("kwargs {kwarg1} and {kwarg2:.2f}"), func(c Call) (string, error) {
		return c.Named["kwarg1"].(string), nil
	})

	got, err := fn(Call{Named: map[string]any{"kwarg1": "hello", "kwarg2": 3.14159}})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "----STARTED kwargs hello and 3.14", logs.messages()[0])
	assert.Equal(t, []string{"kwargs {kwarg1} and {kwarg2:.2f}"}, r.Tasks())
}

func TestWrapCallRendersMixedArguments(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	fn := WrapCall(r.New("mixed {0} {name} {1:>4}"), func(Call) (int, error) { return 0, nil })
	_, err := fn(Call{Args: []any{"a", 7}, Named: map[string]any{"name": "n"}})

	require.NoError(t, err)
	assert.Equal(t, "----STARTED mixed a n    7", logs.messages()[0])
}

func TestWrappedErrorsPropagate(t *testing.T) {
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now))
	sentinel := stderrors.New("not found")

	fn := Wrap1(r.New("lookup {0}"), func(key string) (string, error) {
		return "", sentinel
	})

	_, err := fn("k")
	require.ErrorIs(t, err, sentinel)
	assert.Len(t, r.Samples("lookup {0}"), 1)
	assert.Equal(t, DefaultInitialDepth, r.Depth())
}

func TestWrappedRenderErrorSkipsCall(t *testing.T) {
	r, _ := newTestRegistry()

	called := false
	fn := Wrap0(r.New("missing {0}"), func() (int, error) {
		called = true
		return 1, nil
	})

	got, err := fn()
	require.Error(t, err)
	assert.Zero(t, got)
	assert.False(t, called)
	assert.Empty(t, r.Tasks())
}

func TestWrappedCallsShareOneBucket(t *testing.T) {
	clock := newFakeClock()
	r, logs := newTestRegistry(WithClock(clock.Now))

	durations := map[string]time.Duration{"p": 100 * time.Millisecond, "r": 200 * time.Millisecond}
	f := Wrap2(r.New("X {0} and {1}"), func(a, b string) (string, error) {
		clock.Advance(durations[a])
		return a + b, nil
	})

	_, err := f("p", "q")
	require.NoError(t, err)
	_, err = f("r", "s")
	require.NoError(t, err)

	msgs := logs.messages()
	assert.Equal(t, "----STARTED X p and q", msgs[0])
	assert.Equal(t, "----COMPLETED (in 00.100 seconds) X p and q", msgs[1])
	assert.Equal(t, "----STARTED X r and s", msgs[2])
	assert.Equal(t, []string{"X {0} and {1}"}, r.Tasks())
	assert.Equal(t, 150*time.Millisecond, r.AverageTime("X {0} and {1}"))
}
