package services

import (
	"errors"
	"testing"
	"time"

	"rentloBack/internal/models"
)

func TestCanApprove(t *testing.T) {
	act := models.RentalActivity{Renter: "alice", Owner: "bob", Approval: models.ApprovalPending}

	if err := canApprove(act, "bob"); err != nil {
		t.Fatalf("expected owner to approve, got %v", err)
	}
	if err := canApprove(act, "alice"); !errors.Is(err, ErrNotRequestOwner) {
		t.Fatalf("expected ErrNotRequestOwner for renter, got %v", err)
	}
	if err := canApprove(act, "mallory"); !errors.Is(err, ErrNotRequestOwner) {
		t.Fatalf("expected ErrNotRequestOwner for stranger, got %v", err)
	}

	act.Approval = models.ApprovalApproved
	if err := canApprove(act, "bob"); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved on second approve, got %v", err)
	}
}

func TestCanRemove(t *testing.T) {
	act := models.RentalActivity{Renter: "alice", Owner: "bob", Approval: models.ApprovalPending}

	if err := canRemove(act, "alice"); err != nil {
		t.Fatalf("expected renter to withdraw, got %v", err)
	}
	if err := canRemove(act, "bob"); err != nil {
		t.Fatalf("expected owner to reject, got %v", err)
	}
	if err := canRemove(act, "mallory"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant for stranger, got %v", err)
	}

	act.Approval = models.ApprovalApproved
	for _, actor := range []string{"alice", "bob", "mallory"} {
		if err := canRemove(act, actor); !errors.Is(err, ErrApprovedImmutable) {
			t.Fatalf("expected ErrApprovedImmutable for %s, got %v", actor, err)
		}
	}
}

func TestPartitionExpiredPending(t *testing.T) {
	records := []models.RentalActivity{
		{ID: 1, EndDate: "2024-01-05"},
		{ID: 2, EndDate: "2024-01-06"},
		{ID: 3, EndDate: "2024-01-07"},
	}

	now := time.Date(2024, 1, 6, 14, 30, 0, 0, time.UTC)
	kept, expired := partitionExpired(now, 0, records)
	if len(expired) != 1 || expired[0].ID != 1 {
		t.Fatalf("expected only record 1 expired, got %v", expired)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %v", kept)
	}

	// a pending request expires the day after its end date, never on it
	now = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	_, expired = partitionExpired(now, 0, records[1:2])
	if len(expired) != 0 {
		t.Fatalf("expected record ending today to survive, got %v", expired)
	}
}

func TestPartitionExpiredApprovedGrace(t *testing.T) {
	records := []models.RentalActivity{{ID: 7, EndDate: "2024-01-05"}}

	// within the week after the end date the activity stays visible
	now := time.Date(2024, 1, 12, 23, 0, 0, 0, time.UTC)
	kept, expired := partitionExpired(now, 7, records)
	if len(kept) != 1 || len(expired) != 0 {
		t.Fatalf("expected activity kept on day 7, kept=%v expired=%v", kept, expired)
	}

	now = time.Date(2024, 1, 13, 0, 30, 0, 0, time.UTC)
	kept, expired = partitionExpired(now, 7, records)
	if len(kept) != 0 || len(expired) != 1 {
		t.Fatalf("expected activity pruned after the grace week, kept=%v expired=%v", kept, expired)
	}
}

func TestPartitionExpiredBadDate(t *testing.T) {
	records := []models.RentalActivity{{ID: 9, EndDate: "soon"}}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	kept, expired := partitionExpired(now, 0, records)
	if len(kept) != 1 || len(expired) != 0 {
		t.Fatalf("expected unparseable end date to be kept, kept=%v expired=%v", kept, expired)
	}
}

func TestBuildRentalViews(t *testing.T) {
	records := []models.RentalActivity{
		{ID: 1, Renter: "alice", Owner: "bob", PostID: 10, TotalCost: 40},
		{ID: 2, Renter: "carol", Owner: "alice", PostID: 11, TotalCost: 15},
		{ID: 3, Renter: "carol", Owner: "dave", PostID: 12, TotalCost: 99},
	}

	views := buildRentalViews("alice", records)
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	if !views[0].AmRenter {
		t.Error("expected alice to be the renter of request 1")
	}
	if views[0].User.Handle != "bob" {
		t.Errorf("expected counterpart bob, got %s", views[0].User.Handle)
	}
	if views[0].Post.PostID != 10 {
		t.Errorf("expected post 10, got %d", views[0].Post.PostID)
	}

	if views[1].AmRenter {
		t.Error("expected alice to be the owner of request 2")
	}
	if views[1].User.Handle != "carol" {
		t.Errorf("expected counterpart carol, got %s", views[1].User.Handle)
	}

	if views[0].RequestID != 1 || views[1].RequestID != 2 {
		t.Errorf("expected query order preserved, got %d then %d", views[0].RequestID, views[1].RequestID)
	}
}
