package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/employwise/console/internal/api"
	"github.com/employwise/console/internal/models"
)

// PageSize is the fixed number of users per listing page. Pagination math
// on the console side always assumes this size regardless of what the
// server reports.
const PageSize = 6

// UserAPI defines the remote user-management operations the console consumes
type UserAPI interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
	ListUsers(ctx context.Context, page int) (api.UserPage, error)
	UpdateUser(ctx context.Context, id int, fields api.UserFields) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// ListingState is the listing view's state: the most recently fetched
// page of users, the pagination cursor, and the search text. Users is
// never merged across pages.
type ListingState struct {
	Users      []models.User
	Page       int
	TotalPages int
	SearchText string
}

// DeleteOutcome reports where the listing lands after a deletion: the
// entries remaining on the fetched page and the recomputed cursor.
type DeleteOutcome struct {
	Remaining  []models.User
	Page       int
	TotalPages int
}

// UpdateInput carries the editable fields submitted from the edit form.
// Avatar is deliberately absent: the editor never exposes it, and the
// listing re-attaches the original value before the API call.
type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ListingService orchestrates the user listing: page fetches, the local
// delete/update bookkeeping, and the current-page search filter
type ListingService struct {
	client UserAPI
	logger *slog.Logger
}

// NewListingService creates a new ListingService
func NewListingService(client UserAPI, logger *slog.Logger) *ListingService {
	return &ListingService{
		client: client,
		logger: logger,
	}
}

// LoadPage fetches one page of users and computes the page count. When
// the server omits the total it falls back to the length of the
// delivered page. The returned state always satisfies
// 1 <= Page <= TotalPages; callers should redirect when Page was clamped.
func (s *ListingService) LoadPage(ctx context.Context, page int, search string) (ListingState, error) {
	if page < 1 {
		page = 1
	}

	userPage, err := s.client.ListUsers(ctx, page)
	if err != nil {
		s.logger.Error("failed to load users", slog.Int("page", page), slog.Any("error", err))
		return ListingState{}, err
	}

	total := userPage.Total
	if total == 0 {
		total = len(userPage.Data)
	}

	state := ListingState{
		Users:      userPage.Data,
		Page:       page,
		TotalPages: ceilDiv(total, PageSize),
		SearchText: search,
	}
	if state.TotalPages < 1 {
		state.TotalPages = 1
	}
	if state.Page > state.TotalPages {
		state.Page = state.TotalPages
	}
	return state, nil
}

// DeleteUser removes a user and recomputes the pagination cursor without
// a second server round trip. The estimated total is the entries left on
// this page plus the full pages before it; the estimate can drift from
// server truth across multiple operations, which is an accepted tradeoff.
func (s *ListingService) DeleteUser(ctx context.Context, page, id int) (DeleteOutcome, error) {
	if page < 1 {
		page = 1
	}

	current, err := s.client.ListUsers(ctx, page)
	if err != nil {
		s.logger.Error("failed to load page before delete", slog.Int("page", page), slog.Any("error", err))
		return DeleteOutcome{}, err
	}

	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.logger.Error("failed to delete user", slog.Int("user_id", id), slog.Any("error", err))
		return DeleteOutcome{}, err
	}

	outcome := recomputeAfterDelete(removeByID(current.Data, id), page)
	s.logger.Info("user deleted",
		slog.Int("user_id", id),
		slog.Int("page", outcome.Page),
		slog.Int("total_pages", outcome.TotalPages))
	return outcome, nil
}

// UpdateUser submits a full-record update for a user on the given page.
// The original record's avatar is merged into the submitted fields: the
// edit form never carries it, and dropping it would wipe the avatar on
// the server-side record.
func (s *ListingService) UpdateUser(ctx context.Context, page, id int, input UpdateInput) (models.User, error) {
	if id == 0 {
		// Defensive: the editor's caller always supplies a valid user
		s.logger.Warn("update submitted without user id")
		return models.User{}, models.ErrMissingID
	}
	if page < 1 {
		page = 1
	}

	current, err := s.client.ListUsers(ctx, page)
	if err != nil {
		s.logger.Error("failed to load page before update", slog.Int("page", page), slog.Any("error", err))
		return models.User{}, err
	}

	original, ok := findByID(current.Data, id)
	if !ok {
		s.logger.Warn("user not on current page", slog.Int("user_id", id), slog.Int("page", page))
		return models.User{}, models.ErrNotFound
	}

	updated, err := s.client.UpdateUser(ctx, id, api.UserFields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Avatar:    original.Avatar,
	})
	if err != nil {
		s.logger.Error("failed to update user", slog.Int("user_id", id), slog.Any("error", err))
		return models.User{}, err
	}

	s.logger.Info("user updated", slog.Int("user_id", id))
	return updated, nil
}

// FilterUsers returns the users whose "first last" name contains the
// search text, case-insensitively. The filter is scoped to the supplied
// page and never mutates it; it does not search across pages.
func FilterUsers(users []models.User, search string) []models.User {
	if search == "" {
		return users
	}

	needle := strings.ToLower(search)
	filtered := make([]models.User, 0, len(users))
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.FullName()), needle) {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

// recomputeAfterDelete applies the listing's local pagination bookkeeping:
// totalPages = max(1, ceil((remaining + (page-1)*PageSize) / PageSize)),
// then the cursor moves back one page when this page emptied, or clamps
// to the last page when it now points past the end.
func recomputeAfterDelete(remaining []models.User, page int) DeleteOutcome {
	estimatedTotal := len(remaining) + (page-1)*PageSize
	totalPages := ceilDiv(estimatedTotal, PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	target := page
	if len(remaining) == 0 && page > 1 {
		target = page - 1
	} else if page > totalPages {
		target = totalPages
	}

	return DeleteOutcome{
		Remaining:  remaining,
		Page:       target,
		TotalPages: totalPages,
	}
}

func removeByID(users []models.User, id int) []models.User {
	remaining := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.ID != id {
			remaining = append(remaining, user)
		}
	}
	return remaining
}

func findByID(users []models.User, id int) (models.User, bool) {
	for _, user := range users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
