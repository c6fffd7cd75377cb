package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/internal/infrastructure/redisstore"
)

// newTestStorage necesita un Redis vivo en REDIS_TEST_ADDR; si no, el test se omite.
func newTestStorage(t *testing.T) *redisstore.Storage {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	s := redisstore.New(addr, "", 0).WithPrefix("zeenat:test:" + t.Name() + ":")
	require.NoError(t, s.Ping(context.Background()))
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})
	return s
}

func TestStorage_SetGetDelete(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("sid", []byte(`{"cart":{}}`), time.Minute))
	got, err = s.Get("sid")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"cart":{}}`), got)

	require.NoError(t, s.Delete("sid"))
	got, err = s.Get("sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStorage_Reset(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))

	require.NoError(t, s.Reset())

	for _, k := range []string{"a", "b"} {
		got, err := s.Get(k)
		require.NoError(t, err)
		assert.Nil(t, got, k)
	}
}

func TestStorage_EmptyKeyIsNoop(t *testing.T) {
	s := redisstore.New("127.0.0.1:0", "", 0)
	defer s.Close()

	got, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, s.Set("", []byte("x"), 0))
	assert.NoError(t, s.Delete(""))
}
