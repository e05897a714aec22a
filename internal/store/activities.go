package store

import (
	"context"
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

// InsertActivity persists an already-built record; the recorder owns id
// and timestamp generation.
func (s *Store) InsertActivity(ctx context.Context, item domain.ActivityItem) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO activities (id, type, title, description, user_id, user_name, goal_id, goal_title, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		item.ID, item.Type, item.Title, item.Description, item.UserID, item.UserName,
		item.GoalID, item.GoalTitle, item.Metadata, item.Timestamp,
	)
	return err
}

// ListRecentActivities returns the newest records first. An empty
// activityType matches every type.
func (s *Store) ListRecentActivities(ctx context.Context, activityType domain.ActivityType, limit int) ([]domain.ActivityItem, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, type, title, description, user_id, user_name, goal_id, goal_title, metadata, created_at
		FROM activities
		WHERE $1 = '' OR type = $1
		ORDER BY created_at DESC
		LIMIT $2`, activityType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.ActivityItem, 0, limit)
	for rows.Next() {
		var item domain.ActivityItem
		if err := rows.Scan(&item.ID, &item.Type, &item.Title, &item.Description, &item.UserID,
			&item.UserName, &item.GoalID, &item.GoalTitle, &item.Metadata, &item.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CountActivitiesSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE created_at > $1`, since).Scan(&count)
	return count, err
}
