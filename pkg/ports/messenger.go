package ports

import (
	"context"

	"github.com/aretw0/animefmt/pkg/domain"
)

// Messenger is the chat transport capability used by the dialogue controller.
type Messenger interface {
	// Send delivers a new message to a chat.
	Send(ctx context.Context, chatID int64, msg domain.Message) error

	// SendPhoto delivers a photo (by URL) with msg as its caption.
	SendPhoto(ctx context.Context, chatID int64, photoURL string, caption domain.Message) error

	// Edit replaces the text and keyboard of an existing message.
	Edit(ctx context.Context, chatID int64, messageID int, msg domain.Message) error
}
