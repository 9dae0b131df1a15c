package models

// User is a single record from the remote user-management API.
// The JSON tags match the wire shape of the remote service.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName returns the "first last" display name the search filter matches against
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
