package service

import (
	"context"
	"errors"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	menudomain "github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
	menurepo "github.com/teamnine/humanofdelivery/backend/internal/menu/repository"
	menuservice "github.com/teamnine/humanofdelivery/backend/internal/menu/service"
	"github.com/teamnine/humanofdelivery/backend/internal/observability/metrics"
	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
	orderrepo "github.com/teamnine/humanofdelivery/backend/internal/order/repository"
	storedomain "github.com/teamnine/humanofdelivery/backend/internal/store/domain"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
	storeservice "github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

type OrderService struct {
	orders     orderrepo.Repository
	stores     storerepo.Repository
	menus      menurepo.Repository
	members    memberrepo.Repository
	authorizer memberservice.Authorizer
	log        *logger.Logger
}

func NewOrderService(
	orders orderrepo.Repository,
	stores storerepo.Repository,
	menus menurepo.Repository,
	members memberrepo.Repository,
	authorizer memberservice.Authorizer,
	log *logger.Logger,
) *OrderService {
	return &OrderService{
		orders:     orders,
		stores:     stores,
		menus:      menus,
		members:    members,
		authorizer: authorizer,
		log:        log,
	}
}

type PlaceInput struct {
	StoreID int64
	MenuID  int64
}

type OrderView struct {
	ID         int64         `json:"id"`
	StoreID    int64         `json:"storeId"`
	UserID     int64         `json:"userId"`
	MenuName   string        `json:"menuName"`
	Status     domain.Status `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	ModifiedAt time.Time     `json:"modifiedAt"`
}

// Place creates an order for the acting USER. The store must be open and the
// menu on sale; the menu name is snapshotted onto the order.
func (s *OrderService) Place(ctx context.Context, principalEmail string, input PlaceInput) (OrderView, error) {
	member, err := s.resolvePrincipal(ctx, principalEmail)
	if err != nil {
		return OrderView{}, err
	}

	if member.Role != memberdomain.RoleUser {
		return OrderView{}, memberservice.ErrPermissionDenied
	}

	store, err := s.stores.FindByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, storerepo.ErrStoreNotFound) {
			return OrderView{}, storeservice.ErrStoreNotFound
		}
		return OrderView{}, err
	}
	if store.Status != storedomain.StatusOpen {
		return OrderView{}, storeservice.ErrStoreClosed
	}

	menu, err := s.menus.FindByID(ctx, input.MenuID)
	if err != nil {
		if errors.Is(err, menurepo.ErrMenuNotFound) {
			return OrderView{}, menuservice.ErrMenuNotFound
		}
		return OrderView{}, err
	}
	if menu.StoreID != store.ID || menu.Status != menudomain.StatusOnSale {
		return OrderView{}, menuservice.ErrMenuNotAvailable
	}

	order := domain.Order{
		StoreID:  store.ID,
		UserID:   member.ID,
		MenuName: menu.Name,
		Status:   domain.StatusOrdered,
	}

	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"store_id": store.ID,
			"user_id":  member.ID,
			"action":   "order_place_failed",
		}).Errorf("order place failed: %v", err)
		return OrderView{}, err
	}

	metrics.OrdersPlaced.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"order_id": saved.ID,
		"store_id": saved.StoreID,
		"user_id":  saved.UserID,
		"action":   "order_place_success",
	}).Info("order placed")

	return toView(saved), nil
}

// FindByID limits access to the ordering user and the store owner.
func (s *OrderService) FindByID(ctx context.Context, principalEmail string, orderID int64) (OrderView, error) {
	member, err := s.resolvePrincipal(ctx, principalEmail)
	if err != nil {
		return OrderView{}, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return OrderView{}, ErrOrderNotFound
		}
		return OrderView{}, err
	}

	if err := s.checkOrderAccess(ctx, member, order); err != nil {
		return OrderView{}, err
	}

	return toView(order), nil
}

func (s *OrderService) ListByUser(ctx context.Context, principalEmail string) ([]OrderView, error) {
	member, err := s.resolvePrincipal(ctx, principalEmail)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindAllByUserID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = toView(o)
	}
	return views, nil
}

// UpdateStatus advances the order through its flow; only the store owner may
// do it.
func (s *OrderService) UpdateStatus(ctx context.Context, principalEmail string, orderID int64, next domain.Status) (OrderView, error) {
	member, err := s.resolvePrincipal(ctx, principalEmail)
	if err != nil {
		return OrderView{}, err
	}

	if !next.Valid() {
		return OrderView{}, ErrInvalidOrderStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return OrderView{}, ErrOrderNotFound
		}
		return OrderView{}, err
	}

	store, err := s.stores.FindByID(ctx, order.StoreID)
	if err != nil {
		return OrderView{}, err
	}
	if store.OwnerID != member.ID {
		return OrderView{}, memberservice.ErrPermissionDenied
	}

	if !order.Status.CanTransition(next) {
		return OrderView{}, ErrInvalidOrderStatus
	}

	saved, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return OrderView{}, err
	}

	metrics.OrderStatusUpdates.WithLabelValues(string(next)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"order_id": saved.ID,
		"status":   string(saved.Status),
		"action":   "order_status_updated",
	}).Info("order status updated")

	return toView(saved), nil
}

func (s *OrderService) checkOrderAccess(ctx context.Context, member memberdomain.Member, order domain.Order) error {
	if order.UserID == member.ID {
		return nil
	}

	store, err := s.stores.FindByID(ctx, order.StoreID)
	if err != nil {
		return err
	}
	if store.OwnerID == member.ID {
		return nil
	}

	return memberservice.ErrPermissionDenied
}

func (s *OrderService) resolvePrincipal(ctx context.Context, principalEmail string) (memberdomain.Member, error) {
	member, err := s.members.FindByEmail(ctx, principalEmail)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			return memberdomain.Member{}, memberservice.ErrUserNotFound
		}
		return memberdomain.Member{}, err
	}

	if err := s.authorizer.Authorize(member); err != nil {
		return memberdomain.Member{}, err
	}

	return member, nil
}

func toView(order domain.Order) OrderView {
	return OrderView{
		ID:         order.ID,
		StoreID:    order.StoreID,
		UserID:     order.UserID,
		MenuName:   order.MenuName,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		ModifiedAt: order.ModifiedAt,
	}
}
