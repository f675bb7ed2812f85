package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/divide-it/backend/internal/models"
)

// CreateGroup persists a new group and its initial members in one
// transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, userID := range group.MemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
			group.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID with its member IDs.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?", id,
	).Scan(&group.ID, &group.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY rowid", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all groups with their member IDs.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM groups ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		if group != nil {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

// DeleteGroup removes a group; its memberships, expenses and splits cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group not found: %s", id)
	}
	return nil
}

// AddGroupMembers adds users to a group, ignoring memberships that already
// exist.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, userID := range userIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, user_id) VALUES (?, ?)",
			groupID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to add group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
