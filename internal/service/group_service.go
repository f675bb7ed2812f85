package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage"
)

// GroupService manages groups and their memberships.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group, optionally seeding it with one initial
// member. An unknown initial member rejects the request.
func (s *GroupService) CreateGroup(ctx context.Context, name, initialMemberID string) (*models.Group, error) {
	if name == "" {
		return nil, apperrors.Invalid("name is required")
	}

	group := &models.Group{Name: name}
	if initialMemberID != "" {
		user, err := s.store.GetUserByID(ctx, initialMemberID)
		if err != nil {
			return nil, apperrors.Internal("failed to look up user", err)
		}
		if user == nil {
			return nil, apperrors.Invalid("unknown user: %s", initialMemberID)
		}
		group.MemberIDs = []string{user.ID}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, apperrors.Internal("failed to create group", err)
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// GetGroup retrieves a group with its member IDs.
func (s *GroupService) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get group", err)
	}
	if group == nil {
		return nil, apperrors.NotFound("group not found: %s", id)
	}
	return group, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list groups", err)
	}
	return groups, nil
}

// DeleteGroup removes a group and everything it owns.
func (s *GroupService) DeleteGroup(ctx context.Context, id string) error {
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to get group", err)
	}
	if group == nil {
		return apperrors.NotFound("group not found: %s", id)
	}
	if err := s.store.DeleteGroup(ctx, id); err != nil {
		return apperrors.Internal("failed to delete group", err)
	}
	slog.Info("Group deleted", "group_id", id)
	return nil
}

// AddMemberByEmail adds a user to the group by email. When no account with
// that email exists, a placeholder user (no password) is created so the
// group can record debts against them before they ever sign up.
func (s *GroupService) AddMemberByEmail(ctx context.Context, groupID, email, name string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.Invalid("email is required")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Internal("failed to get group", err)
	}
	if group == nil {
		return nil, apperrors.NotFound("group not found: %s", groupID)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to look up email", err)
	}
	if user == nil {
		first, last := splitName(name)
		user = models.NewUser(email, first, last, "")
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, apperrors.Internal("failed to create placeholder user", err)
		}
		slog.Info("Placeholder user created", "user_id", user.ID, "email", email)
	} else if user.FirstName == "" && name != "" {
		// Fill in the name of an existing placeholder that never got one.
		user.FirstName, user.LastName = splitName(name)
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return nil, apperrors.Internal("failed to update user", err)
		}
	}

	if err := s.store.AddGroupMembers(ctx, groupID, []string{user.ID}); err != nil {
		return nil, apperrors.Internal("failed to add member", err)
	}

	slog.Info("Member added to group", "group_id", groupID, "user_id", user.ID)
	return user, nil
}

func splitName(name string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
