package breaker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAndRecovers(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := New("test", Config{MaxFailures: 2, ResetTimeout: time.Minute})
	b.now = func() time.Time { return now }

	boom := errors.New("boom")
	fail := func(context.Context) error { return boom }
	ok := func(context.Context) error { return nil }

	assert.ErrorIs(t, b.Execute(context.Background(), fail), boom)
	assert.Equal(t, Closed, b.State())
	assert.ErrorIs(t, b.Execute(context.Background(), fail), boom)
	assert.Equal(t, Open, b.State())

	calls := 0
	err := b.Execute(context.Background(), func(context.Context) error { calls++; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.Zero(t, calls)

	now = now.Add(2 * time.Minute)
	require.NoError(t, b.Execute(context.Background(), ok))
	assert.Equal(t, Closed, b.State())
}

func TestBreakerReopensOnFailedTrial(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := New("test", Config{MaxFailures: 1, ResetTimeout: time.Second})
	b.now = func() time.Time { return now }

	boom := errors.New("boom")
	_ = b.Execute(context.Background(), func(context.Context) error { return boom })
	require.Equal(t, Open, b.State())

	now = now.Add(2 * time.Second)
	assert.ErrorIs(t, b.Execute(context.Background(), func(context.Context) error { return boom }), boom)
	assert.Equal(t, Open, b.State())
}

func TestHTTPClientCountsServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient("webhook", Config{MaxFailures: 1, ResetTimeout: time.Hour}, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Do(req)
	assert.Error(t, err)
	assert.Equal(t, Open, c.State())

	req, err = http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Do(req)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
