package service

import (
	"context"
	"errors"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	"github.com/teamnine/humanofdelivery/backend/internal/observability/metrics"
	"github.com/teamnine/humanofdelivery/backend/internal/store/domain"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
)

type StoreService struct {
	stores     storerepo.Repository
	members    memberrepo.Repository
	authorizer memberservice.Authorizer
	log        *logger.Logger
}

func NewStoreService(
	stores storerepo.Repository,
	members memberrepo.Repository,
	authorizer memberservice.Authorizer,
	log *logger.Logger,
) *StoreService {
	return &StoreService{
		stores:     stores,
		members:    members,
		authorizer: authorizer,
		log:        log,
	}
}

type CreateInput struct {
	Name string
}

type StoreView struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Status     domain.Status `json:"status"`
	OwnerID    int64         `json:"ownerId"`
	CreatedAt  time.Time     `json:"createdAt"`
	ModifiedAt time.Time     `json:"modifiedAt"`
}

func (s *StoreService) Create(ctx context.Context, principalEmail string, input CreateInput) (StoreView, error) {
	owner, err := s.resolveOwner(ctx, principalEmail)
	if err != nil {
		return StoreView{}, err
	}

	store := domain.Store{
		Name:    input.Name,
		Status:  domain.StatusOpen,
		OwnerID: owner.ID,
	}

	saved, err := s.stores.Create(ctx, store)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": owner.ID,
			"action":   "store_create_failed",
		}).Errorf("store create failed: %v", err)
		return StoreView{}, err
	}

	metrics.StoresCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"owner_id": owner.ID,
		"store_id": saved.ID,
		"action":   "store_create_success",
	}).Info("store created")

	return toView(saved), nil
}

func (s *StoreService) FindByID(ctx context.Context, id int64) (StoreView, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storerepo.ErrStoreNotFound) {
			return StoreView{}, ErrStoreNotFound
		}
		return StoreView{}, err
	}

	return toView(store), nil
}

func (s *StoreService) FindAll(ctx context.Context) ([]StoreView, error) {
	stores, err := s.stores.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]StoreView, len(stores))
	for i, st := range stores {
		views[i] = toView(st)
	}
	return views, nil
}

// Close marks the store CLOSED. Only its owner may do it.
func (s *StoreService) Close(ctx context.Context, principalEmail string, storeID int64) (StoreView, error) {
	owner, err := s.resolveOwner(ctx, principalEmail)
	if err != nil {
		return StoreView{}, err
	}

	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storerepo.ErrStoreNotFound) {
			return StoreView{}, ErrStoreNotFound
		}
		return StoreView{}, err
	}

	if store.OwnerID != owner.ID {
		return StoreView{}, memberservice.ErrPermissionDenied
	}

	if store.Status == domain.StatusClosed {
		return StoreView{}, ErrStoreClosed
	}

	store.Status = domain.StatusClosed

	saved, err := s.stores.Update(ctx, store)
	if err != nil {
		return StoreView{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"store_id": saved.ID,
		"action":   "store_close_success",
	}).Info("store closed")

	return toView(saved), nil
}

// resolveOwner loads the acting principal and requires the OWNER role.
func (s *StoreService) resolveOwner(ctx context.Context, principalEmail string) (memberdomain.Member, error) {
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

	if member.Role != memberdomain.RoleOwner {
		return memberdomain.Member{}, memberservice.ErrPermissionDenied
	}

	return member, nil
}

func toView(store domain.Store) StoreView {
	return StoreView{
		ID:         store.ID,
		Name:       store.Name,
		Status:     store.Status,
		OwnerID:    store.OwnerID,
		CreatedAt:  store.CreatedAt,
		ModifiedAt: store.ModifiedAt,
	}
}
