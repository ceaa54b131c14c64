package services

import (
	"testing"
	"time"

	"rentloBack/internal/models"
)

func TestGroupByCounterpart(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []models.Message{
		{ID: 5, Sender: "bob", Recipient: "alice", Content: "newest", CreatedAt: base.Add(4 * time.Minute)},
		{ID: 4, Sender: "alice", Recipient: "carol", Content: "hey carol", CreatedAt: base.Add(3 * time.Minute)},
		{ID: 3, Sender: "alice", Recipient: "bob", Content: "reply", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 2, Sender: "bob", Recipient: "alice", Content: "hello", CreatedAt: base.Add(time.Minute), Seen: true},
		{ID: 1, Sender: "carol", Recipient: "dave", Content: "not ours", CreatedAt: base},
	}

	groups := groupByCounterpart("alice", messages)
	if len(groups) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(groups))
	}

	// group order follows the first appearance in the desc-sorted log
	if groups[0].User.Handle != "bob" || groups[1].User.Handle != "carol" {
		t.Fatalf("unexpected group order: %s, %s", groups[0].User.Handle, groups[1].User.Handle)
	}

	bob := groups[0].Messages
	if len(bob) != 3 {
		t.Fatalf("expected 3 messages with bob, got %d", len(bob))
	}
	if bob[0].MessageID != 5 || bob[1].MessageID != 3 || bob[2].MessageID != 2 {
		t.Errorf("expected log order preserved, got %d %d %d", bob[0].MessageID, bob[1].MessageID, bob[2].MessageID)
	}

	if bob[0].AmSender {
		t.Error("expected received message not to be amSender")
	}
	if bob[0].Seen == nil || *bob[0].Seen {
		t.Error("expected unseen received message to carry seen=false")
	}
	if bob[2].Seen == nil || !*bob[2].Seen {
		t.Error("expected seen received message to carry seen=true")
	}

	if !bob[1].AmSender {
		t.Error("expected sent message to be amSender")
	}
	if bob[1].Seen != nil {
		t.Error("expected sent message to carry no seen flag")
	}
}

func TestGroupByCounterpartEmpty(t *testing.T) {
	groups := groupByCounterpart("alice", nil)
	if len(groups) != 0 {
		t.Fatalf("expected no conversations, got %d", len(groups))
	}
}
