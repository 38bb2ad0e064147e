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
	menudomain "github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
	menuservice "github.com/teamnine/humanofdelivery/backend/internal/menu/service"
	"github.com/teamnine/humanofdelivery/backend/internal/session"
	"github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

type createStoreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createMenuRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Price int    `json:"price" validate:"required,gt=0"`
}

type updateMenuRequest struct {
	Name   string `json:"name" validate:"omitempty,max=100"`
	Price  int    `json:"price" validate:"omitempty,gt=0"`
	Status string `json:"menuStatus" validate:"omitempty,oneof=ON_SALE SOLD_OUT"`
}

type Handler struct {
	stores  *service.StoreService
	menus   *menuservice.MenuService
	session session.Store
	timeout time.Duration
	log     *logger.Logger
}

// NewHandler serves /api/stores and the menu routes nested under a store.
func NewHandler(stores *service.StoreService, menus *menuservice.MenuService, sessions session.Store, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{stores: stores, menus: menus, session: sessions, timeout: timeout, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stores", h.collection)
	mux.HandleFunc("/api/stores/", h.subtree)
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

// subtree dispatches /api/stores/{id}, /api/stores/{id}/close,
// /api/stores/{id}/menus and /api/stores/{id}/menus/{menuID}.
func (h *Handler) subtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/stores/"), "/")

	storeID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid store id", nil, "")
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.detail(w, r, storeID)
	case len(parts) == 2 && parts[1] == "close":
		if r.Method != http.MethodPost {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.close(w, r, storeID)
	case len(parts) == 2 && parts[1] == "menus":
		h.menuCollection(w, r, storeID)
	case len(parts) == 3 && parts[1] == "menus":
		menuID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid menu id", nil, "")
			return
		}
		h.menuItem(w, r, menuID)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req createStoreRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.stores.Create(ctx, principal, service.CreateInput{Name: req.Name})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	views, err := h.stores.FindAll(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request, storeID int64) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.stores.FindByID(ctx, storeID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request, storeID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.stores.Close(ctx, principal, storeID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) menuCollection(w http.ResponseWriter, r *http.Request, storeID int64) {
	switch r.Method {
	case http.MethodPost:
		h.createMenu(w, r, storeID)
	case http.MethodGet:
		h.listMenus(w, r, storeID)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) menuItem(w http.ResponseWriter, r *http.Request, menuID int64) {
	switch r.Method {
	case http.MethodPatch:
		h.updateMenu(w, r, menuID)
	case http.MethodDelete:
		h.deleteMenu(w, r, menuID)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request, storeID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req createMenuRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.menus.Create(ctx, principal, storeID, menuservice.CreateInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request, storeID int64) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	views, err := h.menus.ListByStore(ctx, storeID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) updateMenu(w http.ResponseWriter, r *http.Request, menuID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req updateMenuRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.menus.Update(ctx, principal, menuID, menuservice.UpdateInput{
		Name:   req.Name,
		Price:  req.Price,
		Status: menudomain.Status(req.Status),
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) deleteMenu(w http.ResponseWriter, r *http.Request, menuID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.menus.Delete(ctx, principal, menuID); err != nil {
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

	email, err := h.session.Principal(cookie.Value)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return "", false
	}

	return email, true
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}
