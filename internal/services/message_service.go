package services

import (
	"context"
	"log"
	"time"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
)

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	UserRepo    *repositories.UserRepository
}

// SaveRelayMessage persists a relayed message with the delivery hints
// stripped. Called on every send-message event regardless of whether live
// delivery or a push notification succeeded.
func (s *MessageService) SaveRelayMessage(ctx context.Context, msg models.RelayMessage) error {
	return s.MessageRepo.InsertMessage(ctx, msg.Stripped())
}

// GetUserMessages builds the inbox view: the user's messages grouped by
// counterpart, newest conversation activity first, each group's user
// enriched from the directory.
func (s *MessageService) GetUserMessages(ctx context.Context, handle string) ([]models.UserMessages, error) {
	messages, err := s.MessageRepo.GetAllMessages(ctx)
	if err != nil {
		return nil, err
	}

	groups := groupByCounterpart(handle, messages)
	for i := range groups {
		card, err := s.UserRepo.GetCardByHandle(ctx, groups[i].User.Handle)
		if err != nil {
			// keep the group with the bare handle
			log.Printf("enrich conversation user %s: %v", groups[i].User.Handle, err)
			continue
		}
		groups[i].User = card
	}
	return groups, nil
}

func (s *MessageService) ReadMessages(ctx context.Context, otherHandle, actingHandle string, createdAts []time.Time) error {
	return s.MessageRepo.MarkSeen(ctx, otherHandle, actingHandle, createdAts)
}

// groupByCounterpart slices the full message log into per-counterpart
// conversations for one user, preserving the incoming message order within
// each group. Sent messages are tagged amSender; received ones carry the
// seen flag.
func groupByCounterpart(handle string, messages []models.Message) []models.UserMessages {
	groups := []models.UserMessages{}
	index := map[string]int{}

	appendTo := func(counterpart string, view models.MessageView) {
		i, ok := index[counterpart]
		if !ok {
			i = len(groups)
			index[counterpart] = i
			groups = append(groups, models.UserMessages{User: models.UserCard{Handle: counterpart}})
		}
		groups[i].Messages = append(groups[i].Messages, view)
	}

	for _, msg := range messages {
		switch handle {
		case msg.Sender:
			appendTo(msg.Recipient, models.MessageView{
				AmSender:  true,
				Content:   msg.Content,
				CreatedAt: msg.CreatedAt,
				MessageID: msg.ID,
			})
		case msg.Recipient:
			seen := msg.Seen
			appendTo(msg.Sender, models.MessageView{
				AmSender:  false,
				Content:   msg.Content,
				CreatedAt: msg.CreatedAt,
				Seen:      &seen,
				MessageID: msg.ID,
			})
		}
	}
	return groups
}
