package views

// ViewState holds what every view model shares: terminal size and a status message.
// Embed it in view models.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ColumnWidth splits the usable width between two record columns
func (s *ViewState) ColumnWidth() int {
	w := (s.Width - 10) / 2
	if w < 24 {
		return 36
	}
	return w
}
