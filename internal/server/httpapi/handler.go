// Package httpapi exposes the signup and login protocols over HTTP and serves
// the static front end.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/logging"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// Response bodies. Clients match on these literals.
const (
	MsgSignupOK        = "Signup successful!"
	MsgLoginOK         = "Login successful!"
	MsgMissingFields   = "Email and password are required."
	MsgEmailExists     = "Email already exists. Please use a different email or login."
	MsgUserNotFound    = "Invalid credentials. User not found."
	MsgPasswordInvalid = "Invalid credentials. Password incorrect."
	MsgInternal        = "Internal server error."
)

const maxBodyBytes = 1 << 20

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type Handler struct {
	users     UserService
	logger    logging.Logger
	staticDir string
}

func NewHandler(users UserService, logger logging.Logger, staticDir string) *Handler {
	return &Handler{users: users, logger: logger, staticDir: staticDir}
}

// Routes returns the full handler tree, middleware included.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /signup", h.signup)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.Handle("GET /", http.FileServer(http.Dir(h.staticDir)))

	return h.requestID(h.accessLog(mux))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	c := readCredentials(w, r)

	_, err := h.users.Signup(r.Context(), c.Email, c.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, MsgSignupOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	c := readCredentials(w, r)

	_, err := h.users.Login(r.Context(), c.Email, c.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, MsgLoginOK)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		writeText(w, http.StatusBadRequest, MsgMissingFields)
	case errors.Is(err, common.ErrEmailConflict):
		writeText(w, http.StatusConflict, MsgEmailExists)
	case errors.Is(err, common.ErrUserNotFound):
		writeText(w, http.StatusUnauthorized, MsgUserNotFound)
	case errors.Is(err, common.ErrPasswordMismatch):
		writeText(w, http.StatusUnauthorized, MsgPasswordInvalid)
	default:
		loggerFrom(r.Context(), h.logger).Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeText(w, http.StatusInternalServerError, MsgInternal)
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts JSON and urlencoded bodies. Anything it cannot
// parse comes back as empty credentials, which the service rejects as
// missing fields.
func readCredentials(w http.ResponseWriter, r *http.Request) credentials {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var c credentials
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return credentials{}
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return credentials{}
		}
		c.Email = validUTF8(r.PostForm.Get("email"))
		c.Password = validUTF8(r.PostForm.Get("password"))
	}

	return c
}

// validUTF8 replaces every invalid byte with U+FFFD, the same substitution
// encoding/json makes, so a form value equals what the store reads back.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
