package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/employwise/console/internal/models"
	"github.com/employwise/console/internal/notice"
	"github.com/employwise/console/internal/services"
	"github.com/employwise/console/internal/session"
	"github.com/employwise/console/internal/views"
	pkglogger "github.com/employwise/console/pkg/logger"
)

// EditUserForm represents the edit form submission. The avatar is not a
// form field; the listing service re-attaches the stored value.
type EditUserForm struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
}

// UsersHandler serves the user listing and its edit/delete submissions
type UsersHandler struct {
	listing  *services.ListingService
	csrf     *session.CSRFTokenManager
	renderer *views.Renderer
	logger   *slog.Logger
	audit    *pkglogger.AuditLogger
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(listing *services.ListingService, csrf *session.CSRFTokenManager, renderer *views.Renderer, logger *slog.Logger, audit *pkglogger.AuditLogger) *UsersHandler {
	return &UsersHandler{
		listing:  listing,
		csrf:     csrf,
		renderer: renderer,
		logger:   logger,
		audit:    audit,
	}
}

// List renders one page of users. The search box filters the fetched page
// by full name without touching the server, and the edit query parameter
// opens the edit form for a user on this page.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parsePage(query.Get("page"))
	search := query.Get("search")

	state, err := h.listing.LoadPage(r.Context(), page, search)
	if err != nil {
		h.renderPage(w, views.ListingPage{
			Notice: views.NewNoticeView(
				models.NewNotice(models.NoticeError, "Failed to load users", models.NoticeTTL), true),
			Page:       page,
			TotalPages: 1,
			Search:     search,
			CSRFToken:  h.csrfToken(r),
		})
		return
	}

	// The requested page was past the end; land on the real last page
	if state.Page != page {
		http.Redirect(w, r, listingURL(state.Page, search, 0), http.StatusFound)
		return
	}

	filtered := services.FilterUsers(state.Users, search)

	listingPage := views.ListingPage{
		Users:          views.NewUserViews(filtered),
		Page:           state.Page,
		TotalPages:     state.TotalPages,
		Search:         search,
		PrevDisabled:   state.Page <= 1,
		NextDisabled:   state.Page >= state.TotalPages,
		ShowPagination: search == "" || len(filtered) > 0,
		CSRFToken:      h.csrfToken(r),
	}

	if editID, err := strconv.Atoi(query.Get("edit")); err == nil {
		// The edit form only opens for a user on the fetched page
		for _, user := range state.Users {
			if user.ID == editID {
				edit := views.NewUserView(user)
				listingPage.Edit = &edit
				break
			}
		}
	}

	if n, ok := notice.Pop(w, r); ok {
		listingPage.Notice = views.NewNoticeView(n, ok)
	}

	h.renderPage(w, listingPage)
}

// Delete removes a user and returns to the listing, stepping the page
// back when the deletion emptied it
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.logger.Warn("delete submitted with invalid user id", slog.String("raw_id", chi.URLParam(r, "id")))
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	page := parsePage(r.PostFormValue("page"))
	search := r.PostFormValue("search")

	outcome, err := h.listing.DeleteUser(r.Context(), page, id)
	if err != nil {
		h.audit.LogUserMutation(pkglogger.AuditEvent{EventType: "delete", UserID: id, Success: false, FailureReason: err.Error()})
		notice.Set(w, models.NewNotice(models.NoticeError, "Failed to delete user", models.NoticeTTL))
		http.Redirect(w, r, listingURL(page, search, 0), http.StatusFound)
		return
	}

	h.audit.LogUserMutation(pkglogger.AuditEvent{EventType: "delete", UserID: id, Success: true})
	notice.Set(w, models.NewNotice(models.NoticeSuccess, "User deleted successfully!", models.NoticeTTL))
	http.Redirect(w, r, listingURL(outcome.Page, search, 0), http.StatusFound)
}

// Update submits the edit form for a user. Failures return to the open
// edit form; success closes it and confirms.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		// Nothing sensible to update; log for diagnosis and return to the
		// listing without touching the remote service
		h.logger.Warn("update submitted with invalid user id", slog.String("raw_id", chi.URLParam(r, "id")))
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	page := parsePage(r.PostFormValue("page"))
	search := r.PostFormValue("search")

	form := EditUserForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}
	if err := ValidateRequest(form); err != nil {
		h.logger.Info("edit form rejected", slog.Int("user_id", id), slog.Any("error", err))
		notice.Set(w, models.NewNotice(models.NoticeError, "Failed to update user", models.NoticeTTL))
		http.Redirect(w, r, listingURL(page, search, id), http.StatusFound)
		return
	}

	_, err = h.listing.UpdateUser(r.Context(), page, id, services.UpdateInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		h.audit.LogUserMutation(pkglogger.AuditEvent{EventType: "update", UserID: id, Success: false, FailureReason: err.Error()})
		notice.Set(w, models.NewNotice(models.NoticeError, "Failed to update user", models.NoticeTTL))
		http.Redirect(w, r, listingURL(page, search, id), http.StatusFound)
		return
	}

	h.audit.LogUserMutation(pkglogger.AuditEvent{EventType: "update", UserID: id, Success: true})
	notice.Set(w, models.NewNotice(models.NoticeSuccess, "User updated successfully!", models.NoticeTTL))
	http.Redirect(w, r, listingURL(page, search, 0), http.StatusFound)
}

// EditRedirect preserves the old standalone edit route by forwarding to
// the listing with the edit form open
func (h *UsersHandler) EditRedirect(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}
	http.Redirect(w, r, listingURL(1, "", id), http.StatusFound)
}

func (h *UsersHandler) renderPage(w http.ResponseWriter, page views.ListingPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Listing(w, page); err != nil {
		h.logger.Error("failed to render listing page", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *UsersHandler) csrfToken(r *http.Request) string {
	claims := session.FromContext(r)
	if claims == nil {
		return ""
	}

	token, err := h.csrf.GenerateToken(claims.ID)
	if err != nil {
		h.logger.Error("failed to generate csrf token", slog.Any("error", err))
		return ""
	}
	return token
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func listingURL(page int, search string, edit int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if search != "" {
		values.Set("search", search)
	}
	if edit > 0 {
		values.Set("edit", strconv.Itoa(edit))
	}
	return "/users?" + values.Encode()
}
