package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentloBack/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (int, error) {
	query := `
        INSERT INTO users (handle, email, password, image_url, created_at)
        VALUES (?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, user.Handle, user.Email, user.Password, user.ImageURL, time.Now())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *UserRepository) GetUserByHandle(ctx context.Context, handle string) (models.User, error) {
	var u models.User
	query := `
        SELECT id, handle, email, full_name, image_url, bio, push_token,
               address, postcode, city, state,
               phone_no, whatsapp_enabled, facebook, instagram, created_at
        FROM users WHERE handle = ?`
	err := r.DB.QueryRowContext(ctx, query, handle).Scan(
		&u.ID, &u.Handle, &u.Email, &u.FullName, &u.ImageURL, &u.Bio, &u.PushToken,
		&u.Location.Address, &u.Location.Postcode, &u.Location.City, &u.Location.State,
		&u.Contact.PhoneNo, &u.Contact.WhatsappEnabled, &u.Contact.Facebook, &u.Contact.Instagram,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	u.Contact.Email = u.Email
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	query := `SELECT id, handle, email, password FROM users WHERE email = ?`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Handle, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var u models.User
	query := `SELECT id, handle, email, full_name, image_url FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Handle, &u.Email, &u.FullName, &u.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetCardByHandle fetches the short profile shown next to rental requests
// and conversation groups.
func (r *UserRepository) GetCardByHandle(ctx context.Context, handle string) (models.UserCard, error) {
	var card models.UserCard
	query := `SELECT handle, full_name, image_url, push_token FROM users WHERE handle = ?`
	err := r.DB.QueryRowContext(ctx, query, handle).Scan(&card.Handle, &card.FullName, &card.ImageURI, &card.PushToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserCard{}, ErrUserNotFound
		}
		return models.UserCard{}, err
	}
	return card, nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, handle string, user models.User) error {
	query := `
        UPDATE users
        SET full_name = ?, bio = ?,
            address = ?, postcode = ?, city = ?, state = ?,
            phone_no = ?, whatsapp_enabled = ?, facebook = ?, instagram = ?
        WHERE handle = ?`
	_, err := r.DB.ExecContext(ctx, query,
		user.FullName, user.Bio,
		user.Location.Address, user.Location.Postcode, user.Location.City, user.Location.State,
		user.Contact.PhoneNo, user.Contact.WhatsappEnabled, user.Contact.Facebook, user.Contact.Instagram,
		handle,
	)
	return err
}

func (r *UserRepository) UpdatePushToken(ctx context.Context, handle, token string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET push_token = ? WHERE handle = ?`, token, handle)
	return err
}

// UpdateImageURL swaps the profile image and returns the previous URL so
// the caller can delete the old object from storage.
func (r *UserRepository) UpdateImageURL(ctx context.Context, handle, imageURL string) (string, error) {
	var old string
	err := r.DB.QueryRowContext(ctx, `SELECT image_url FROM users WHERE handle = ?`, handle).Scan(&old)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	_, err = r.DB.ExecContext(ctx, `UPDATE users SET image_url = ? WHERE handle = ?`, imageURL, handle)
	if err != nil {
		return "", err
	}
	return old, nil
}

func (r *UserRepository) SetSession(ctx context.Context, userID int, session models.Session) error {
	query := `INSERT INTO sessions (user_id, refresh_token, expires_at) VALUES (?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, userID, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	query := `SELECT user_id, refresh_token, expires_at FROM sessions WHERE refresh_token = ? LIMIT 1`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.UserID, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil
		}
		return models.Session{}, err
	}
	return s, nil
}
