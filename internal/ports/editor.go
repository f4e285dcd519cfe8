package ports

import "os/exec"

// EditorOpener opens a stored collection file in the user's editor
type EditorOpener interface {
	// OpenFile blocks until the editor exits
	OpenFile(path string) error

	// Command builds the editor process without starting it, for tea.ExecProcess
	Command(path string) (*exec.Cmd, error)
}
