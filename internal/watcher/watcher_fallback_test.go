//go:build !linux

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQueue_Translate(t *testing.T) {
	q := &fallbackQueue{logger: testLogger(), path: "/watched"}

	tests := []struct {
		name     string
		event    fsnotify.Event
		wantKind Kind
		wantName string
	}{
		{"create in dir", fsnotify.Event{Name: "/watched/a.txt", Op: fsnotify.Create}, KindCreate, "a.txt"},
		{"write self", fsnotify.Event{Name: "/watched", Op: fsnotify.Write}, KindModify, ""},
		{"remove", fsnotify.Event{Name: "/watched/a.txt", Op: fsnotify.Remove}, KindDelete, "a.txt"},
		{"rename", fsnotify.Event{Name: "/watched", Op: fsnotify.Rename}, KindMoveSelf, ""},
		{"chmod", fsnotify.Event{Name: "/watched", Op: fsnotify.Chmod}, KindAttrib, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := q.translate(tt.event)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, rec.Kind)
			assert.Equal(t, tt.wantName, rec.Name)
			assert.Equal(t, fallbackWatchID, rec.WatchID)
		})
	}
}

func TestFallbackQueue_ReadEncodesRecords(t *testing.T) {
	q, err := Open(testLogger())
	require.NoError(t, err)
	defer q.Close() //nolint:errcheck // Test cleanup

	dir := t.TempDir()
	_, err = q.AddWatch(dir, InterestMask)
	require.NoError(t, err)

	buf := NewBuffer(Options{})
	done := make(chan []Record, 1)
	go func() {
		n, err := q.Read(buf)
		if err != nil {
			done <- nil
			return
		}
		var records []Record
		for rec, err := range Decode(buf, n) {
			if err != nil {
				break
			}
			records = append(records, rec)
		}
		done <- records
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), nil, 0o600))

	select {
	case records := <-done:
		require.NotEmpty(t, records)
		assert.True(t, records[0].Kind.Has(KindCreate|KindModify))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for fsnotify event")
	}
}
