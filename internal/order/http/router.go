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
	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
	"github.com/teamnine/humanofdelivery/backend/internal/order/service"
	"github.com/teamnine/humanofdelivery/backend/internal/session"
)

type placeOrderRequest struct {
	StoreID int64 `json:"storeId" validate:"required,gt=0"`
	MenuID  int64 `json:"menuId" validate:"required,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ORDERED ACCEPTED COOKING DELIVERING DELIVERED CANCELED"`
}

type Handler struct {
	orders  *service.OrderService
	session session.Store
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(orders *service.OrderService, sessions session.Store, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{orders: orders, session: sessions, timeout: timeout, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", h.collection)
	mux.HandleFunc("/api/orders/", h.subtree)
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.place(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

// subtree dispatches /api/orders/{id} and /api/orders/{id}/status.
func (h *Handler) subtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/")

	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid order id", nil, "")
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.detail(w, r, orderID)
	case len(parts) == 2 && parts[1] == "status":
		if r.Method != http.MethodPatch {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.updateStatus(w, r, orderID)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
	}
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.orders.Place(ctx, principal, service.PlaceInput{
		StoreID: req.StoreID,
		MenuID:  req.MenuID,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	views, err := h.orders.ListByUser(ctx, principal)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request, orderID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.orders.FindByID(ctx, principal, orderID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, orderID int64) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !commonhttp.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	view, err := h.orders.UpdateStatus(ctx, principal, orderID, domain.Status(req.Status))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, view)
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
