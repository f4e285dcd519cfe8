package editor

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpener(env map[string]string, installed ...string) *Opener {
	return &Opener{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, i := range installed {
				if i == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", exec.ErrNotFound
		},
	}
}

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		install  []string
		wantArgs []string
		wantErr  error
	}{
		{
			name:     "visual wins over editor",
			env:      map[string]string{"VISUAL": "hx", "EDITOR": "vim"},
			wantArgs: []string{"hx", "books.json"},
		},
		{
			name:     "editor with flags",
			env:      map[string]string{"EDITOR": "code --wait"},
			wantArgs: []string{"code", "--wait", "books.json"},
		},
		{
			name:     "fallback to installed editor",
			env:      map[string]string{"EDITOR": "  "},
			install:  []string{"nano"},
			wantArgs: []string{"/usr/bin/nano", "books.json"},
		},
		{
			name:    "nothing available",
			wantErr: ErrNoEditor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := fakeOpener(tt.env, tt.install...).Command("books.json")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestOpener_OpenFileWithoutEditor(t *testing.T) {
	err := fakeOpener(nil).OpenFile("books.json")
	assert.ErrorIs(t, err, ErrNoEditor)
}
