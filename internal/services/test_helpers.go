package services

import (
	"context"

	"github.com/employwise/console/internal/api"
	"github.com/employwise/console/internal/models"
)

// MockUserAPI implements UserAPI for testing
type MockUserAPI struct {
	LoginFunc      func(ctx context.Context, creds api.Credentials) (string, error)
	ListUsersFunc  func(ctx context.Context, page int) (api.UserPage, error)
	UpdateUserFunc func(ctx context.Context, id int, fields api.UserFields) (models.User, error)
	DeleteUserFunc func(ctx context.Context, id int) error
}

func (m *MockUserAPI) Login(ctx context.Context, creds api.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "", &api.RequestError{StatusCode: 400}
}

func (m *MockUserAPI) ListUsers(ctx context.Context, page int) (api.UserPage, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, page)
	}
	return api.UserPage{}, nil
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, id int, fields api.UserFields) (models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, fields)
	}
	return models.User{}, &api.RequestError{StatusCode: 500}
}

func (m *MockUserAPI) DeleteUser(ctx context.Context, id int) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// NewTestUser creates a user record for tests
func NewTestUser(id int, firstName, lastName string) models.User {
	return models.User{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "." + lastName + "@reqres.in",
		Avatar:    "https://reqres.in/img/faces/avatar.jpg",
	}
}

// NewTestPage creates a page of n sequential users starting at startID
func NewTestPage(startID, n, total int) api.UserPage {
	page := api.UserPage{Total: total}
	for i := 0; i < n; i++ {
		page.Data = append(page.Data, NewTestUser(startID+i, "First", "Last"))
	}
	return page
}
