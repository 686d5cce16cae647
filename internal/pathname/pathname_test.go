package pathname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/watchdog/internal/errors"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute file", "/tmp/demo", "demo"},
		{"nested", "/home/user/notes/todo.txt", "todo.txt"},
		{"relative", "notes/todo.txt", "todo.txt"},
		{"no separator", "demo", "demo"},
		{"dot relative", "./demo", "demo"},
		{"double separator", "/tmp//demo", "demo"},
		{"hidden file", "/home/user/.bashrc", ".bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DisplayName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName_Invalid(t *testing.T) {
	for _, input := range []string{"", "/", "/tmp/", "relative/dir/"} {
		t.Run(input, func(t *testing.T) {
			got, err := DisplayName(input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, errors.ErrInvalidPath)
			assert.Equal(t, errors.ExitInvalidPath, errors.StatusOf(err))
		})
	}
}

func TestDisplayName_LeavesInputUntouched(t *testing.T) {
	input := "/tmp/demo"
	_, err := DisplayName(input)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/demo", input)
}
