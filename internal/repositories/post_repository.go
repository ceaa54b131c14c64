package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"rentloBack/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository struct {
	DB *sql.DB
}

func (r *PostRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	categories, err := json.Marshal(post.Categories)
	if err != nil {
		return models.Post{}, err
	}

	post.CreatedAt = time.Now()
	query := `
        INSERT INTO posts (user_handle, name, description, image, price, categories,
                           is_available, address, postcode, city, state, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		post.UserHandle, post.Name, post.Description, post.Image, post.Price, categories,
		post.IsAvailable,
		post.Location.Address, post.Location.Postcode, post.Location.City, post.Location.State,
		post.CreatedAt,
	)
	if err != nil {
		return models.Post{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Post{}, err
	}
	post.ID = int(id)
	return post, nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id int) (models.Post, error) {
	var p models.Post
	var categories []byte
	query := `
        SELECT id, user_handle, name, description, image, price, categories,
               is_available, address, postcode, city, state, created_at
        FROM posts WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserHandle, &p.Name, &p.Description, &p.Image, &p.Price, &categories,
		&p.IsAvailable,
		&p.Location.Address, &p.Location.Postcode, &p.Location.City, &p.Location.State,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &p.Categories); err != nil {
			return models.Post{}, err
		}
	}
	return p, nil
}

// GetPostCard fetches the image/title fragment embedded in rental listings.
func (r *PostRepository) GetPostCard(ctx context.Context, id int) (models.PostCard, error) {
	var card models.PostCard
	query := `SELECT id, image, name FROM posts WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&card.PostID, &card.Image, &card.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PostCard{}, ErrPostNotFound
		}
		return models.PostCard{}, err
	}
	return card, nil
}

// GetAvailablePosts returns every available post; feed filters are applied
// in memory by the service, matching the marketplace's search behaviour.
func (r *PostRepository) GetAvailablePosts(ctx context.Context) ([]models.Post, error) {
	query := `
        SELECT id, user_handle, name, description, image, price, categories,
               is_available, address, postcode, city, state, created_at
        FROM posts
        WHERE is_available = 1
        ORDER BY created_at DESC`
	return r.queryPosts(ctx, query)
}

func (r *PostRepository) GetPostsByHandle(ctx context.Context, handle string, onlyAvailable bool) ([]models.Post, error) {
	query := `
        SELECT id, user_handle, name, description, image, price, categories,
               is_available, address, postcode, city, state, created_at
        FROM posts
        WHERE user_handle = ?`
	if onlyAvailable {
		query += ` AND is_available = 1`
	}
	query += ` ORDER BY created_at DESC`
	return r.queryPosts(ctx, query, handle)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var categories []byte
		err := rows.Scan(
			&p.ID, &p.UserHandle, &p.Name, &p.Description, &p.Image, &p.Price, &categories,
			&p.IsAvailable,
			&p.Location.Address, &p.Location.Postcode, &p.Location.City, &p.Location.State,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(categories) > 0 {
			if err := json.Unmarshal(categories, &p.Categories); err != nil {
				return nil, err
			}
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, id int, post models.Post) error {
	categories, err := json.Marshal(post.Categories)
	if err != nil {
		return err
	}
	query := `
        UPDATE posts
        SET name = ?, description = ?, image = ?, price = ?, categories = ?
        WHERE id = ?`
	_, err = r.DB.ExecContext(ctx, query, post.Name, post.Description, post.Image, post.Price, categories, id)
	return err
}

func (r *PostRepository) SetAvailability(ctx context.Context, id int, available bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE posts SET is_available = ? WHERE id = ?`, available, id)
	return err
}

func (r *PostRepository) DeletePost(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}

// UpdateLocationByHandle fans a profile address change out to all of the
// user's posts.
func (r *PostRepository) UpdateLocationByHandle(ctx context.Context, handle string, loc models.Location) error {
	query := `UPDATE posts SET address = ?, postcode = ?, city = ?, state = ? WHERE user_handle = ?`
	_, err := r.DB.ExecContext(ctx, query, loc.Address, loc.Postcode, loc.City, loc.State, handle)
	return err
}
