package remote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// InsertMessage stores one chat message.
func (s *Store) InsertMessage(ctx context.Context, msg *schema.ChatMessage) error {
	isCounselor := 0
	if msg.IsCounselor {
		isCounselor = 1
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO messages (id, chat_room_id, content, sender_id, counselor_id, is_counselor, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ChatRoomID, msg.Content,
		strPtrToNull(msg.SenderID), strPtrToNull(msg.CounselorID),
		isCounselor, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessages returns a room's messages ordered by creation time ascending.
func (s *Store) ListMessages(ctx context.Context, chatRoomID string) ([]schema.ChatMessage, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, chat_room_id, content, sender_id, counselor_id, is_counselor, created_at
		 FROM messages WHERE chat_room_id = ? ORDER BY created_at ASC`,
		chatRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []schema.ChatMessage
	for rows.Next() {
		var msg schema.ChatMessage
		var senderID, counselorID sql.NullString
		var isCounselor int
		if err := rows.Scan(&msg.ID, &msg.ChatRoomID, &msg.Content, &senderID, &counselorID, &isCounselor, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.SenderID = nullToStrPtr(senderID)
		msg.CounselorID = nullToStrPtr(counselorID)
		msg.IsCounselor = isCounselor != 0
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
