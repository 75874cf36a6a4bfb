package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromise_Await(t *testing.T) {
	p := Defer(10*time.Millisecond, func() (int, error) { return 42, nil })

	v, err := p.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	select {
	case <-p.Done():
	default:
		t.Fatal("expected promise to be settled after Await")
	}
}

func TestPromise_AwaitHonoursContext(t *testing.T) {
	p := Defer(time.Second, func() (int, error) { return 1, nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPromise_WaitsForDelay(t *testing.T) {
	start := time.Now()
	_, err := Defer(50*time.Millisecond, func() (string, error) { return "ok", nil }).Await(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestPromise_Then(t *testing.T) {
	boom := errors.New("boom")

	t.Run("fulfilled", func(t *testing.T) {
		var got string
		<-Defer(0, func() (string, error) { return "ok", nil }).Then(
			func(v string) { got = v },
			func(err error) { t.Errorf("unexpected error %v", err) },
		)
		assert.Equal(t, "ok", got)
	})

	t.Run("rejected", func(t *testing.T) {
		var got error
		<-Defer(0, func() (string, error) { return "", boom }).Then(
			func(v string) { t.Errorf("unexpected value %q", v) },
			func(err error) { got = err },
		)
		assert.ErrorIs(t, got, boom)
	})
}

func TestPromise_PanicRejects(t *testing.T) {
	_, err := Defer(0, func() (int, error) { panic("kaboom") }).Await(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}
