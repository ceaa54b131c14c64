package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"rentloBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) InsertMessage(ctx context.Context, msg models.Message) error {
	query := `
        INSERT INTO messages (sender, recipient, content, created_at, seen)
        VALUES (?, ?, ?, ?, 0)`
	_, err := r.DB.ExecContext(ctx, query, msg.Sender, msg.Recipient, msg.Content, msg.CreatedAt)
	return err
}

// GetAllMessages returns the full message log newest first; the service
// slices it into per-counterpart conversations.
func (r *MessageRepository) GetAllMessages(ctx context.Context) ([]models.Message, error) {
	query := `
        SELECT id, sender, recipient, content, created_at, seen
        FROM messages
        ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Recipient, &msg.Content, &msg.CreatedAt, &msg.Seen); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkSeen flags the listed messages from sender to recipient as read.
// CreatedAt is the correlation key the clients hold.
func (r *MessageRepository) MarkSeen(ctx context.Context, sender, recipient string, createdAts []time.Time) error {
	if len(createdAts) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(createdAts)), ", ")
	query := `
        UPDATE messages SET seen = 1
        WHERE sender = ? AND recipient = ? AND created_at IN (` + placeholders + `)`

	args := make([]interface{}, 0, len(createdAts)+2)
	args = append(args, sender, recipient)
	for _, t := range createdAts {
		args = append(args, t)
	}

	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}
