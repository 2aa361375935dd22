package domain

// TextEvent is an inbound text message (or command) from a chat.
type TextEvent struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// CallbackEvent is an inbound button press carrying an opaque token.
type CallbackEvent struct {
	ChatID    int64
	UserID    int64
	MessageID int // The message that holds the pressed keyboard
	Data      string
}

// Button is a single inline keyboard button.
type Button struct {
	Label string
	Token string
}

// Keyboard is a list of button rows.
type Keyboard [][]Button

// Message is an outbound text (or caption) with its delivery options.
type Message struct {
	Text           string
	HTML           bool // Rich markup mode
	DisablePreview bool
	Keyboard       Keyboard
}
