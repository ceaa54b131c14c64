package models

import "time"

// Message is the persisted chat record. CreatedAt is supplied by the
// sending client and doubles as the correlation key for mark-seen.
type Message struct {
	ID        int       `json:"messageId"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Seen      bool      `json:"seen"`
}

// RelayMessage is the wire form of a send-message event. The two hint
// fields ride along for delivery only and are never persisted.
type RelayMessage struct {
	Sender             string    `json:"sender"`
	Recipient          string    `json:"recipient"`
	Content            string    `json:"content"`
	CreatedAt          time.Time `json:"createdAt"`
	RecipientPushToken string    `json:"recipientPushToken,omitempty"`
	SenderFullName     string    `json:"senderFullName,omitempty"`
}

// Stripped returns the persistable message without the delivery hints.
func (m RelayMessage) Stripped() Message {
	return Message{
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// MessageView is one message inside a conversation group. Seen is only
// meaningful when the caller is the recipient.
type MessageView struct {
	AmSender  bool      `json:"amSender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Seen      *bool     `json:"seen,omitempty"`
	MessageID int       `json:"messageId"`
}

// UserMessages groups a user's messages by counterpart for the inbox view.
type UserMessages struct {
	User     UserCard      `json:"user"`
	Messages []MessageView `json:"messages"`
}
