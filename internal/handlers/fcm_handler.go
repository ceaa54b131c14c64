package handlers

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"
)

// FCMHandler delivers chat push notifications to offline recipients.
// Delivery is best-effort: the relay logs failures and never retries.
type FCMHandler struct {
	Client *messaging.Client
}

func NewFCMHandler(client *messaging.Client) *FCMHandler {
	return &FCMHandler{Client: client}
}

func (h *FCMHandler) SendMessage(ctx context.Context, token, title, body, senderHandle string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"senderHandle": senderHandle,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	response, err := h.Client.Send(ctx, message)
	if err != nil {
		log.Printf("Error sending push notification: %v", err)
		return err
	}
	log.Printf("Push notification sent: %s", response)
	return nil
}
