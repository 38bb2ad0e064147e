package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
	commonhttp "github.com/teamnine/humanofdelivery/backend/internal/common/http"
	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	"github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	"github.com/teamnine/humanofdelivery/backend/internal/member/service"
	"github.com/teamnine/humanofdelivery/backend/internal/session"
)

type signUpRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=USER OWNER"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateRequest struct {
	Name        string `json:"name" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=8,max=72"`
}

type deleteRequest struct {
	Password string `json:"password" validate:"required"`
}

type logoutResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	members  *service.MemberService
	sessions session.Store
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(members *service.MemberService, sessions session.Store, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{members: members, sessions: sessions, timeout: timeout, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/members/signup", h.signUp)
	mux.HandleFunc("/api/members/login", h.login)
	mux.HandleFunc("/api/members/logout", h.logout)
	mux.HandleFunc("/api/members/", h.byID)
	return mux
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	var req signUpRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.members.SignUp(ctx, service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	var req loginRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.members.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	sessionID, err := h.sessions.Create(view.Email)
	if err != nil {
		h.log.Errorf("login failed: session create error: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setSessionCookie(w, r, sessionID)
	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
		h.members.Logout(cookie.Value)
	}

	clearSessionCookie(w, r)
	commonhttp.WriteJSON(w, http.StatusOK, logoutResponse{Message: "logout complete"})
}

// byID dispatches /api/members/{id} by method.
func (h *Handler) byID(w http.ResponseWriter, r *http.Request) {
	idPart := strings.TrimPrefix(r.URL.Path, "/api/members/")
	if idPart == "" || strings.Contains(idPart, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
		return
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidMemberID, "invalid member id", nil, "")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.profile(w, r, id)
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	profile, err := h.members.FindUserByID(ctx, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if profile.Owner != nil {
		commonhttp.WriteJSON(w, http.StatusOK, profile.Owner)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, profile.User)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.members.UpdateUserByID(ctx, principal, id, service.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	var req deleteRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.members.DeleteUserByID(ctx, id, req.Password); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil {
		commonhttp.HandleError(w, r, session.ErrLoginRequired, h.log)
		return "", false
	}

	email, err := h.sessions.Principal(cookie.Value)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return "", false
	}

	return email, true
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}
