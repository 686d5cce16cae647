package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/watchdog/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen(t *testing.T) {
	q, err := Open(testLogger())
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.NoError(t, q.Close())
}

func TestQueue_AddWatch(t *testing.T) {
	q, err := Open(testLogger())
	require.NoError(t, err)
	defer q.Close() //nolint:errcheck // Test cleanup

	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	wd, err := q.AddWatch(path, InterestMask)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(wd), 0)
}

func TestQueue_AddWatchMissingPath(t *testing.T) {
	q, err := Open(testLogger())
	require.NoError(t, err)
	defer q.Close() //nolint:errcheck // Test cleanup

	_, err = q.AddWatch(filepath.Join(t.TempDir(), "does-not-exist"), InterestMask)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAddFailed)
	assert.Equal(t, errors.ExitAddFailed, errors.StatusOf(err))
}

func TestQueue_SingleWatch(t *testing.T) {
	q, err := Open(testLogger())
	require.NoError(t, err)
	defer q.Close() //nolint:errcheck // Test cleanup

	dir := t.TempDir()
	_, err = q.AddWatch(dir, InterestMask)
	require.NoError(t, err)

	_, err = q.AddWatch(dir, InterestMask)
	assert.ErrorIs(t, err, errors.ErrAddFailed)
}
