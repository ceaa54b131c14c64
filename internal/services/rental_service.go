package services

import (
	"context"
	"errors"
	"log"
	"time"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
)

var (
	ErrNotRequestOwner   = errors.New("only the post owner can approve a request")
	ErrNotParticipant    = errors.New("user is not a party of this request")
	ErrAlreadyApproved   = errors.New("request already approved")
	ErrApprovedImmutable = errors.New("cant reject/delete an approved request")
)

// Approved activities outlive their end date by a week so both parties can
// still see them for disputes and reviews; pending requests expire the day
// after their end date.
const activityGraceDays = 7

type RentalService struct {
	RentalRepo *repositories.RentalRepository
	PostRepo   *repositories.PostRepository
	UserRepo   *repositories.UserRepository
}

func (s *RentalService) SendRentalRequest(ctx context.Context, act models.RentalActivity) (models.RentalActivity, error) {
	if _, err := s.PostRepo.GetPostByID(ctx, act.PostID); err != nil {
		return models.RentalActivity{}, err
	}
	return s.RentalRepo.CreateActivity(ctx, act)
}

func (s *RentalService) GetRentalRequests(ctx context.Context, handle string) ([]models.RentalView, error) {
	return s.listActivities(ctx, handle, models.ApprovalPending, 0)
}

func (s *RentalService) GetRentalActivities(ctx context.Context, handle string) ([]models.RentalView, error) {
	return s.listActivities(ctx, handle, models.ApprovalApproved, activityGraceDays)
}

// listActivities is the prune-on-list read path: expired records found by
// the query are deleted as a side effect and never shown. There is no
// background timer; under low traffic stale records wait for the next list.
func (s *RentalService) listActivities(ctx context.Context, handle, approval string, graceDays int) ([]models.RentalView, error) {
	records, err := s.RentalRepo.ListByApproval(ctx, approval)
	if err != nil {
		return nil, err
	}

	kept, expired := partitionExpired(time.Now(), graceDays, records)
	for _, act := range expired {
		if err := s.RentalRepo.DeleteActivity(ctx, act.ID); err != nil {
			log.Printf("prune rental activity %d: %v", act.ID, err)
		}
	}

	views := buildRentalViews(handle, kept)
	for i := range views {
		s.enrichView(ctx, &views[i])
	}
	return views, nil
}

// enrichView attaches the counterpart profile and the post card. Each
// lookup is independent; a missing post drops the post fields but keeps
// the request.
func (s *RentalService) enrichView(ctx context.Context, view *models.RentalView) {
	if card, err := s.UserRepo.GetCardByHandle(ctx, view.User.Handle); err == nil {
		card.PushToken = ""
		view.User = card
	} else {
		log.Printf("enrich rental view user %s: %v", view.User.Handle, err)
	}

	if card, err := s.PostRepo.GetPostCard(ctx, view.Post.PostID); err == nil {
		view.Post = card
	} else if !errors.Is(err, repositories.ErrPostNotFound) {
		log.Printf("enrich rental view post %d: %v", view.Post.PostID, err)
	}
}

func (s *RentalService) ApproveRentalRequest(ctx context.Context, requestID int, actor string) error {
	act, err := s.RentalRepo.GetActivityByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := canApprove(act, actor); err != nil {
		return err
	}
	return s.RentalRepo.SetApproved(ctx, requestID)
}

func (s *RentalService) RemoveRentalRequest(ctx context.Context, requestID int, actor string) error {
	act, err := s.RentalRepo.GetActivityByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := canRemove(act, actor); err != nil {
		return err
	}
	return s.RentalRepo.DeleteActivity(ctx, requestID)
}

// canApprove guards the only forward transition, pending -> approved.
func canApprove(act models.RentalActivity, actor string) error {
	if act.Owner != actor {
		return ErrNotRequestOwner
	}
	if act.Approval == models.ApprovalApproved {
		return ErrAlreadyApproved
	}
	return nil
}

// canRemove guards the terminal delete transition. Approved activities are
// immutable to removal for either party; they only leave via the sweep.
func canRemove(act models.RentalActivity, actor string) error {
	if act.Approval == models.ApprovalApproved {
		return ErrApprovedImmutable
	}
	if act.Owner != actor && act.Renter != actor {
		return ErrNotParticipant
	}
	return nil
}

// partitionExpired splits records into live and expired ones. A record
// expires when endDate + graceDays, truncated to midnight, is strictly
// before today. Records with an unparseable end date are kept.
func partitionExpired(now time.Time, graceDays int, records []models.RentalActivity) (kept, expired []models.RentalActivity) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, act := range records {
		endDate, err := time.ParseInLocation("2006-01-02", act.EndDate, now.Location())
		if err != nil {
			kept = append(kept, act)
			continue
		}
		if endDate.AddDate(0, 0, graceDays).Before(today) {
			expired = append(expired, act)
			continue
		}
		kept = append(kept, act)
	}
	return kept, expired
}

// buildRentalViews keeps the records involving the user, preserving query
// order, and annotates each with the caller's side and the counterpart.
func buildRentalViews(handle string, records []models.RentalActivity) []models.RentalView {
	var views []models.RentalView
	for _, act := range records {
		var view models.RentalView
		switch handle {
		case act.Renter:
			view.AmRenter = true
			view.User = models.UserCard{Handle: act.Owner}
		case act.Owner:
			view.AmRenter = false
			view.User = models.UserCard{Handle: act.Renter}
		default:
			continue
		}
		view.RequestID = act.ID
		view.Post = models.PostCard{PostID: act.PostID}
		view.StartDate = act.StartDate
		view.EndDate = act.EndDate
		view.TotalCost = act.TotalCost
		view.CreatedAt = act.CreatedAt
		views = append(views, view)
	}
	return views
}
