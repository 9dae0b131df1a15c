// Package views renders the console's HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/employwise/console/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// NoticeView is a notice prepared for rendering: the remaining display
// window is resolved to milliseconds for the auto-hide timer.
type NoticeView struct {
	Kind      models.NoticeKind
	Message   string
	TTLMillis int64
}

// LoginPage is the view model for the login screen
type LoginPage struct {
	Notice     *NoticeView
	Email      string
	RememberMe bool
	// RedirectAfter, when set, navigates to /users once the success
	// notice has been shown
	RedirectAfter bool
}

// UserView is a user record prepared for rendering. First and last name
// stay separate for the edit form; FullName is the display string.
type UserView struct {
	ID        int
	FirstName string
	LastName  string
	FullName  string
	Email     string
	Avatar    string
}

// ListingPage is the view model for the user listing screen
type ListingPage struct {
	Notice         *NoticeView
	Users          []UserView
	Page           int
	TotalPages     int
	Search         string
	Edit           *UserView
	PrevDisabled   bool
	NextDisabled   bool
	ShowPagination bool
	CSRFToken      string
}

// Renderer executes the embedded page templates
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates
func New() *Renderer {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// NewNoticeView adapts a popped notice for rendering, or returns nil
func NewNoticeView(n models.Notice, ok bool) *NoticeView {
	if !ok {
		return nil
	}
	return &NoticeView{
		Kind:      n.Kind,
		Message:   n.Message,
		TTLMillis: n.TTLMillis(time.Now()),
	}
}

// NewUserView adapts a user record for rendering
func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}

// NewUserViews adapts a slice of user records for rendering
func NewUserViews(users []models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}

// Login renders the login page
func (r *Renderer) Login(w http.ResponseWriter, page LoginPage) error {
	return r.render(w, "login.html", page)
}

// Listing renders the user listing page
func (r *Renderer) Listing(w http.ResponseWriter, page ListingPage) error {
	return r.render(w, "users.html", page)
}

func (r *Renderer) render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
