package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campuscollab-backend/internal/security"
)

// NewRouter wires the API surface. Project browsing is public; everything
// that acts on behalf of a caller sits behind the auth middleware.
func NewRouter(
	tokens security.TokenManager,
	projects *ProjectHandler,
	requests *RequestHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Logging)

	// Public browsing
	r.HandleFunc("/projects", projects.List).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", projects.Get).Methods(http.MethodGet)

	auth := r.PathPrefix("/").Subrouter()
	auth.Use(Auth(tokens))

	// Projects
	auth.HandleFunc("/projects", projects.Create).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{id}", projects.Update).Methods(http.MethodPut)
	auth.HandleFunc("/projects/{id}", projects.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/projects/{id}/status", projects.SetStatus).Methods(http.MethodPut)
	auth.HandleFunc("/projects/{id}/join", projects.Apply).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{id}/requests", projects.ListRequests).Methods(http.MethodGet)

	// Join requests
	auth.HandleFunc("/requests/my", requests.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/requests/{id}", requests.Get).Methods(http.MethodGet)
	auth.HandleFunc("/requests/{id}/decision", requests.Decide).Methods(http.MethodPut)
	auth.HandleFunc("/requests/{id}", requests.EditSop).Methods(http.MethodPut)

	// Notifications
	auth.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/read-all", notifications.MarkAllRead).Methods(http.MethodPatch)
	auth.HandleFunc("/notifications/{id}/read", notifications.MarkRead).Methods(http.MethodPatch)

	return r
}
