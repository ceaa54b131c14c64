package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
	"rentloBack/utils"
)

var (
	// ErrPostLocked blocks edits/deletes of a post referenced by any rental
	// activity, pending or approved.
	ErrPostLocked      = errors.New("post has rental activity")
	ErrNotPostOwner    = errors.New("user does not own this post")
	ErrAlreadyDisabled = errors.New("post already disabled")
	ErrAlreadyEnabled  = errors.New("post already enabled")
)

type PostService struct {
	PostRepo   *repositories.PostRepository
	RentalRepo *repositories.RentalRepository
	UserRepo   *repositories.UserRepository
	Storage    *utils.S3Storage
}

func (s *PostService) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	post.Price = math.Floor(post.Price*100) / 100
	post.IsAvailable = true
	return s.PostRepo.CreatePost(ctx, post)
}

// GetPost returns a single post enriched with the owner's image and
// contact details.
func (s *PostService) GetPost(ctx context.Context, id int) (models.Post, error) {
	post, err := s.PostRepo.GetPostByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	owner, err := s.UserRepo.GetUserByHandle(ctx, post.UserHandle)
	if err != nil {
		return models.Post{}, err
	}
	post.UserImage = owner.ImageURL
	post.UserContact = owner.Contact
	return post, nil
}

func (s *PostService) GetFeed(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts, err := s.PostRepo.GetAvailablePosts(ctx)
	if err != nil {
		return nil, err
	}
	return filterPosts(filter, posts), nil
}

func (s *PostService) GetMyPosts(ctx context.Context, handle string) ([]models.Post, error) {
	return s.PostRepo.GetPostsByHandle(ctx, handle, false)
}

func (s *PostService) EditPost(ctx context.Context, id int, actor string, post models.Post) (models.Post, error) {
	if err := s.checkUnlocked(ctx, id); err != nil {
		return models.Post{}, err
	}

	current, err := s.PostRepo.GetPostByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if current.UserHandle != actor {
		return models.Post{}, ErrNotPostOwner
	}

	// replaced image leaves storage best-effort
	if current.Image != post.Image {
		if err := s.Storage.DeleteFileByURL(current.Image); err != nil {
			log.Printf("delete replaced post image: %v", err)
		}
	}

	post.Price = math.Floor(post.Price*100) / 100
	if err := s.PostRepo.UpdatePost(ctx, id, post); err != nil {
		return models.Post{}, err
	}
	return s.PostRepo.GetPostByID(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id int, actor string) error {
	if err := s.checkUnlocked(ctx, id); err != nil {
		return err
	}

	post, err := s.PostRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserHandle != actor {
		return ErrNotPostOwner
	}

	if err := s.Storage.DeleteFileByURL(post.Image); err != nil {
		log.Printf("delete post image: %v", err)
	}
	return s.PostRepo.DeletePost(ctx, id)
}

func (s *PostService) SetAvailability(ctx context.Context, id int, actor string, available bool) (models.Post, error) {
	post, err := s.PostRepo.GetPostByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if err := canToggleAvailability(post, actor, available); err != nil {
		return models.Post{}, err
	}
	if err := s.PostRepo.SetAvailability(ctx, id, available); err != nil {
		return models.Post{}, err
	}
	post.IsAvailable = available
	return post, nil
}

func (s *PostService) checkUnlocked(ctx context.Context, postID int) error {
	n, err := s.RentalRepo.CountByPostID(ctx, postID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPostLocked
	}
	return nil
}

func canToggleAvailability(post models.Post, actor string, available bool) error {
	if post.UserHandle != actor {
		return ErrNotPostOwner
	}
	if post.IsAvailable == available {
		if available {
			return ErrAlreadyEnabled
		}
		return ErrAlreadyDisabled
	}
	return nil
}

// filterPosts applies the feed's search, category, price and location
// filters in memory over the available posts.
func filterPosts(filter models.PostFilter, posts []models.Post) []models.Post {
	search := strings.ToLower(filter.Search)

	var out []models.Post
	for _, p := range posts {
		if filter.HideHandle != "" && p.UserHandle == filter.HideHandle {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if !hasAllCategories(p.Categories, filter.Categories) {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		if !matchLocation(filter, p.Location) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAllCategories(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchLocation honours the first location field the client supplied,
// mirroring the feed's one-field-at-a-time location search.
func matchLocation(filter models.PostFilter, loc models.Location) bool {
	contains := func(field, keyword string) bool {
		return strings.Contains(strings.ToLower(field), strings.ToLower(keyword))
	}
	switch {
	case filter.Address != "":
		return contains(loc.Address, filter.Address)
	case filter.Postcode != "":
		return contains(loc.Postcode, filter.Postcode)
	case filter.City != "":
		return contains(loc.City, filter.City)
	case filter.State != "":
		return contains(loc.State, filter.State)
	}
	return true
}
