package domain

type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeInfo
	NoticeError
	// NoticeNotFound blocks the action that produced it.
	NoticeNotFound
)

// Notice - last user-facing status message.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Level == NoticeNone && n.Text == ""
}

// Info - notice about a completed step.
func Info(text string) Notice {
	return Notice{Level: NoticeInfo, Text: text}
}

// Failure - notice about a failed or rejected action.
func Failure(text string) Notice {
	return Notice{Level: NoticeError, Text: text}
}

// NotFound - notice shown when the requested poll does not exist.
func NotFound(text string) Notice {
	return Notice{Level: NoticeNotFound, Text: text}
}
