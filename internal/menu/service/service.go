package service

import (
	"context"
	"errors"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	"github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
	menurepo "github.com/teamnine/humanofdelivery/backend/internal/menu/repository"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
	storeservice "github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

type MenuService struct {
	menus      menurepo.Repository
	stores     storerepo.Repository
	members    memberrepo.Repository
	authorizer memberservice.Authorizer
	log        *logger.Logger
}

func NewMenuService(
	menus menurepo.Repository,
	stores storerepo.Repository,
	members memberrepo.Repository,
	authorizer memberservice.Authorizer,
	log *logger.Logger,
) *MenuService {
	return &MenuService{
		menus:      menus,
		stores:     stores,
		members:    members,
		authorizer: authorizer,
		log:        log,
	}
}

type CreateInput struct {
	Name  string
	Price int
}

type UpdateInput struct {
	Name   string
	Price  int
	Status domain.Status
}

type MenuView struct {
	ID         int64         `json:"id"`
	StoreID    int64         `json:"storeId"`
	Name       string        `json:"name"`
	Price      int           `json:"price"`
	Status     domain.Status `json:"menuStatus"`
	CreatedAt  time.Time     `json:"createdAt"`
	ModifiedAt time.Time     `json:"modifiedAt"`
}

func (s *MenuService) Create(ctx context.Context, principalEmail string, storeID int64, input CreateInput) (MenuView, error) {
	if _, err := s.resolveStoreOwner(ctx, principalEmail, storeID); err != nil {
		return MenuView{}, err
	}

	menu := domain.Menu{
		StoreID: storeID,
		Name:    input.Name,
		Price:   input.Price,
		Status:  domain.StatusOnSale,
	}

	saved, err := s.menus.Create(ctx, menu)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"store_id": storeID,
			"action":   "menu_create_failed",
		}).Errorf("menu create failed: %v", err)
		return MenuView{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"store_id": storeID,
		"menu_id":  saved.ID,
		"action":   "menu_create_success",
	}).Info("menu created")

	return toView(saved), nil
}

func (s *MenuService) Update(ctx context.Context, principalEmail string, menuID int64, input UpdateInput) (MenuView, error) {
	menu, err := s.findLiveMenu(ctx, menuID)
	if err != nil {
		return MenuView{}, err
	}

	if _, err := s.resolveStoreOwner(ctx, principalEmail, menu.StoreID); err != nil {
		return MenuView{}, err
	}

	if input.Name != "" {
		menu.Name = input.Name
	}
	if input.Price > 0 {
		menu.Price = input.Price
	}
	if input.Status != "" {
		if !input.Status.Valid() || input.Status == domain.StatusDeleted {
			return MenuView{}, ErrInvalidMenuStatus
		}
		menu.Status = input.Status
	}

	saved, err := s.menus.Update(ctx, menu)
	if err != nil {
		return MenuView{}, err
	}

	return toView(saved), nil
}

// Delete retires a menu; like member deactivation it is a status transition,
// not a row removal.
func (s *MenuService) Delete(ctx context.Context, principalEmail string, menuID int64) error {
	menu, err := s.findLiveMenu(ctx, menuID)
	if err != nil {
		return err
	}

	if _, err := s.resolveStoreOwner(ctx, principalEmail, menu.StoreID); err != nil {
		return err
	}

	menu.Status = domain.StatusDeleted

	if _, err := s.menus.Update(ctx, menu); err != nil {
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"menu_id": menuID,
		"action":  "menu_delete_success",
	}).Info("menu deleted")

	return nil
}

func (s *MenuService) ListByStore(ctx context.Context, storeID int64) ([]MenuView, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, storerepo.ErrStoreNotFound) {
			return nil, storeservice.ErrStoreNotFound
		}
		return nil, err
	}

	menus, err := s.menus.FindAllByStoreID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	views := make([]MenuView, len(menus))
	for i, m := range menus {
		views[i] = toView(m)
	}
	return views, nil
}

func (s *MenuService) findLiveMenu(ctx context.Context, menuID int64) (domain.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, menurepo.ErrMenuNotFound) {
			return domain.Menu{}, ErrMenuNotFound
		}
		return domain.Menu{}, err
	}

	if menu.Status == domain.StatusDeleted {
		return domain.Menu{}, ErrMenuNotFound
	}

	return menu, nil
}

func (s *MenuService) resolveStoreOwner(ctx context.Context, principalEmail string, storeID int64) (memberdomain.Member, error) {
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

	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storerepo.ErrStoreNotFound) {
			return memberdomain.Member{}, storeservice.ErrStoreNotFound
		}
		return memberdomain.Member{}, err
	}

	if store.OwnerID != member.ID {
		return memberdomain.Member{}, memberservice.ErrPermissionDenied
	}

	return member, nil
}

func toView(menu domain.Menu) MenuView {
	return MenuView{
		ID:         menu.ID,
		StoreID:    menu.StoreID,
		Name:       menu.Name,
		Price:      menu.Price,
		Status:     menu.Status,
		CreatedAt:  menu.CreatedAt,
		ModifiedAt: menu.ModifiedAt,
	}
}
