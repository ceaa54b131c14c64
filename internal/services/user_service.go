package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
	"rentloBack/utils"
)

var (
	ErrDuplicateHandle = errors.New("this User ID has already taken")
	ErrDuplicateEmail  = errors.New("email is already in use")
	ErrWrongPassword   = errors.New("wrong credentials")
	// ErrUserLocked blocks profile-detail updates while the user has rental
	// activity on either side.
	ErrUserLocked = errors.New("user has rental activity")
)

const sessionTTL = 24 * 30 * 2 * time.Hour

type UserService struct {
	UserRepo   *repositories.UserRepository
	PostRepo   *repositories.PostRepository
	RentalRepo *repositories.RentalRepository
	Storage    *utils.S3Storage
	SigningKey string
	NoImageURL string
}

func (s *UserService) SignUp(ctx context.Context, user models.User) error {
	if _, err := s.UserRepo.GetUserByHandle(ctx, user.Handle); err == nil {
		return ErrDuplicateHandle
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}
	if _, err := s.UserRepo.GetUserByEmail(ctx, user.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.ImageURL = s.NoImageURL

	_, err = s.UserRepo.CreateUser(ctx, user)
	return err
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return models.Tokens{}, ErrWrongPassword
		}
		return models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Invalid password for user: %s", user.Handle)
		return models.Tokens{}, ErrWrongPassword
	}

	accessToken, err := utils.NewAccessToken(s.SigningKey, user.ID, user.Handle)
	if err != nil {
		return models.Tokens{}, err
	}

	tokens := models.Tokens{
		AccessToken:  accessToken,
		RefreshToken: utils.NewRefreshToken(),
	}
	session := models.Session{
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	if err := s.UserRepo.SetSession(ctx, user.ID, session); err != nil {
		return models.Tokens{}, err
	}
	return tokens, nil
}

func (s *UserService) GetUserByHandle(ctx context.Context, handle string) (models.User, error) {
	user, err := s.UserRepo.GetUserByHandle(ctx, handle)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// GetUserDetails returns another user's public profile together with their
// available posts.
func (s *UserService) GetUserDetails(ctx context.Context, handle string) (models.User, []models.Post, error) {
	user, err := s.GetUserByHandle(ctx, handle)
	if err != nil {
		return models.User{}, nil, err
	}
	posts, err := s.PostRepo.GetPostsByHandle(ctx, handle, true)
	if err != nil {
		return models.User{}, nil, err
	}
	return user, posts, nil
}

// UpdateDetails rewrites the profile fields and fans the new location out
// to the user's posts. Blocked while the user has any rental activity so
// in-flight agreements keep the terms they were made under.
func (s *UserService) UpdateDetails(ctx context.Context, handle string, details models.User) error {
	n, err := s.RentalRepo.CountByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrUserLocked
	}

	if err := s.UserRepo.UpdateDetails(ctx, handle, details); err != nil {
		return err
	}
	return s.PostRepo.UpdateLocationByHandle(ctx, handle, details.Location)
}

func (s *UserService) UpdatePushToken(ctx context.Context, handle, token string) error {
	return s.UserRepo.UpdatePushToken(ctx, handle, token)
}

// UpdateProfileImage swaps the stored image URL and deletes the previous
// object unless it is the shared placeholder.
func (s *UserService) UpdateProfileImage(ctx context.Context, handle, imageURL string) error {
	old, err := s.UserRepo.UpdateImageURL(ctx, handle, imageURL)
	if err != nil {
		return err
	}
	if old != "" && old != s.NoImageURL {
		if err := s.Storage.DeleteFileByURL(old); err != nil {
			log.Printf("delete previous profile image: %v", err)
		}
	}
	return nil
}
