package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentloBack/internal/models"
)

var ErrRequestNotFound = errors.New("rental request not found")

type RentalRepository struct {
	DB *sql.DB
}

func (r *RentalRepository) CreateActivity(ctx context.Context, act models.RentalActivity) (models.RentalActivity, error) {
	act.Approval = models.ApprovalPending
	act.CreatedAt = time.Now()
	query := `
        INSERT INTO rental_activities (renter, owner, post_id, start_date, end_date, total_cost, approval, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		act.Renter, act.Owner, act.PostID, act.StartDate, act.EndDate, act.TotalCost, act.Approval, act.CreatedAt)
	if err != nil {
		return models.RentalActivity{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.RentalActivity{}, err
	}
	act.ID = int(id)
	return act, nil
}

func (r *RentalRepository) GetActivityByID(ctx context.Context, id int) (models.RentalActivity, error) {
	var act models.RentalActivity
	query := `
        SELECT id, renter, owner, post_id,
               DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
               total_cost, approval, created_at
        FROM rental_activities WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&act.ID, &act.Renter, &act.Owner, &act.PostID,
		&act.StartDate, &act.EndDate,
		&act.TotalCost, &act.Approval, &act.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RentalActivity{}, ErrRequestNotFound
		}
		return models.RentalActivity{}, err
	}
	return act, nil
}

func (r *RentalRepository) ListByApproval(ctx context.Context, approval string) ([]models.RentalActivity, error) {
	query := `
        SELECT id, renter, owner, post_id,
               DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
               total_cost, approval, created_at
        FROM rental_activities
        WHERE approval = ?
        ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, approval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.RentalActivity
	for rows.Next() {
		var act models.RentalActivity
		err := rows.Scan(
			&act.ID, &act.Renter, &act.Owner, &act.PostID,
			&act.StartDate, &act.EndDate,
			&act.TotalCost, &act.Approval, &act.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *RentalRepository) SetApproved(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE rental_activities SET approval = ? WHERE id = ?`, models.ApprovalApproved, id)
	return err
}

func (r *RentalRepository) DeleteActivity(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM rental_activities WHERE id = ?`, id)
	return err
}

// CountByPostID reports how many rental activities, pending or approved,
// reference a post. A non-zero count blocks post edits and deletion.
func (r *RentalRepository) CountByPostID(ctx context.Context, postID int) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rental_activities WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}

// CountByHandle reports how many rental activities a user participates in
// on either side. A non-zero count blocks profile-detail updates.
func (r *RentalRepository) CountByHandle(ctx context.Context, handle string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rental_activities WHERE renter = ? OR owner = ?`, handle, handle).Scan(&n)
	return n, err
}
