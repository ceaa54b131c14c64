package services

import (
	"errors"
	"testing"

	"rentloBack/internal/models"
)

func TestCanToggleAvailability(t *testing.T) {
	post := models.Post{UserHandle: "bob", IsAvailable: true}

	if err := canToggleAvailability(post, "bob", false); err != nil {
		t.Fatalf("expected owner to disable, got %v", err)
	}
	if err := canToggleAvailability(post, "alice", false); !errors.Is(err, ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}
	if err := canToggleAvailability(post, "bob", true); !errors.Is(err, ErrAlreadyEnabled) {
		t.Fatalf("expected ErrAlreadyEnabled, got %v", err)
	}

	post.IsAvailable = false
	if err := canToggleAvailability(post, "bob", false); !errors.Is(err, ErrAlreadyDisabled) {
		t.Fatalf("expected ErrAlreadyDisabled, got %v", err)
	}
	if err := canToggleAvailability(post, "bob", true); err != nil {
		t.Fatalf("expected owner to re-enable, got %v", err)
	}
}

func TestFilterPosts(t *testing.T) {
	posts := []models.Post{
		{ID: 1, UserHandle: "alice", Name: "Cordless Drill", Description: "18V power drill", Price: 12, Categories: []string{"tools"}, Location: models.Location{City: "Penang"}},
		{ID: 2, UserHandle: "bob", Name: "Camping Tent", Description: "sleeps four", Price: 30, Categories: []string{"outdoor", "camping"}, Location: models.Location{City: "Ipoh"}},
		{ID: 3, UserHandle: "bob", Name: "Projector", Description: "HD projector", Price: 55, Categories: []string{"electronics"}, Location: models.Location{City: "Penang"}},
	}

	got := filterPosts(models.PostFilter{Search: "drill"}, posts)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected search to match post 1, got %v", got)
	}

	got = filterPosts(models.PostFilter{HideHandle: "bob"}, posts)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected bob's posts hidden, got %v", got)
	}

	got = filterPosts(models.PostFilter{Categories: []string{"outdoor", "camping"}}, posts)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected all categories required, got %v", got)
	}

	got = filterPosts(models.PostFilter{MinPrice: 20, MaxPrice: 40}, posts)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected price band to match post 2, got %v", got)
	}

	got = filterPosts(models.PostFilter{City: "penang"}, posts)
	if len(got) != 2 {
		t.Fatalf("expected 2 posts in Penang, got %v", got)
	}

	got = filterPosts(models.PostFilter{}, posts)
	if len(got) != 3 {
		t.Fatalf("expected no filter to keep all posts, got %v", got)
	}
}

func TestMatchLocationFirstFieldWins(t *testing.T) {
	loc := models.Location{Address: "12 Beach Rd", Postcode: "10450", City: "George Town", State: "Penang"}

	if !matchLocation(models.PostFilter{Address: "beach", City: "nowhere"}, loc) {
		t.Fatal("expected address filter to take precedence over city")
	}
	if matchLocation(models.PostFilter{Postcode: "99999", State: "Penang"}, loc) {
		t.Fatal("expected postcode mismatch to reject despite matching state")
	}
}
