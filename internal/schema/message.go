package schema

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChatMessage belongs to a chat room. Exactly one of SenderID and
// CounselorID is set: end-user messages carry sender_id with
// is_counselor=false, counselor messages carry counselor_id with
// is_counselor=true.
type ChatMessage struct {
	ID          string  `json:"id"`
	ChatRoomID  string  `json:"chat_room_id"`
	Content     string  `json:"content"`
	SenderID    *string `json:"sender_id"`
	CounselorID *string `json:"counselor_id"`
	IsCounselor bool    `json:"is_counselor"`
	CreatedAt   string  `json:"created_at"`
}

// NewChatMessage constructs a message, enforcing the sender/counselor
// exclusivity at the service boundary. Pass exactly one non-empty identity.
func NewChatMessage(chatRoomID, content, senderID, counselorID string) (*ChatMessage, error) {
	if chatRoomID == "" {
		return nil, fmt.Errorf("chat_room_id is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if (senderID == "") == (counselorID == "") {
		return nil, fmt.Errorf("exactly one of sender_id and counselor_id must be set")
	}

	msg := &ChatMessage{
		ID:         uuid.NewString(),
		ChatRoomID: chatRoomID,
		Content:    content,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if counselorID != "" {
		msg.CounselorID = &counselorID
		msg.IsCounselor = true
	} else {
		msg.SenderID = &senderID
	}
	return msg, nil
}

// User is a row in the remote users table, resolved from the local
// identity marker (a LINE username) at push and bulk-delete time.
type User struct {
	ID           string `json:"id"`
	LineUsername string `json:"line_username"`
	CreatedAt    string `json:"created_at,omitempty"`
}
