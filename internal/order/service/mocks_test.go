package service_test

import (
	"context"
	"testing"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	menudomain "github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
	menurepo "github.com/teamnine/humanofdelivery/backend/internal/menu/repository"
	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
	orderrepo "github.com/teamnine/humanofdelivery/backend/internal/order/repository"
	"github.com/teamnine/humanofdelivery/backend/internal/order/service"
	storedomain "github.com/teamnine/humanofdelivery/backend/internal/store/domain"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
)

type mockOrderRepo struct {
	createFunc          func(ctx context.Context, order domain.Order) (domain.Order, error)
	findByIDFunc        func(ctx context.Context, id int64) (domain.Order, error)
	findAllByUserIDFunc func(ctx context.Context, userID int64) ([]domain.Order, error)
	updateStatusFunc    func(ctx context.Context, id int64, status domain.Status) (domain.Order, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	order.ID = 1
	return order, nil
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Order{}, orderrepo.ErrOrderNotFound
}

func (m *mockOrderRepo) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	if m.findAllByUserIDFunc != nil {
		return m.findAllByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return domain.Order{ID: id, Status: status}, nil
}

type mockStoreRepo struct {
	findByIDFunc func(ctx context.Context, id int64) (storedomain.Store, error)
}

func (m *mockStoreRepo) Create(ctx context.Context, store storedomain.Store) (storedomain.Store, error) {
	return store, nil
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id int64) (storedomain.Store, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return storedomain.Store{}, storerepo.ErrStoreNotFound
}

func (m *mockStoreRepo) FindAll(ctx context.Context) ([]storedomain.Store, error) {
	return nil, nil
}

func (m *mockStoreRepo) FindAllByOwnerID(ctx context.Context, ownerID int64) ([]storedomain.Store, error) {
	return nil, nil
}

func (m *mockStoreRepo) CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error) {
	return 0, nil
}

func (m *mockStoreRepo) Update(ctx context.Context, store storedomain.Store) (storedomain.Store, error) {
	return store, nil
}

type mockMenuRepo struct {
	findByIDFunc func(ctx context.Context, id int64) (menudomain.Menu, error)
}

func (m *mockMenuRepo) Create(ctx context.Context, menu menudomain.Menu) (menudomain.Menu, error) {
	return menu, nil
}

func (m *mockMenuRepo) FindByID(ctx context.Context, id int64) (menudomain.Menu, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return menudomain.Menu{}, menurepo.ErrMenuNotFound
}

func (m *mockMenuRepo) FindAllByStoreID(ctx context.Context, storeID int64) ([]menudomain.Menu, error) {
	return nil, nil
}

func (m *mockMenuRepo) Update(ctx context.Context, menu menudomain.Menu) (menudomain.Menu, error) {
	return menu, nil
}

type mockMemberRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (memberdomain.Member, error)
}

func (m *mockMemberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (memberdomain.Member, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return memberdomain.Member{}, memberrepo.ErrMemberNotFound
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id int64) (memberdomain.Member, error) {
	return memberdomain.Member{}, memberrepo.ErrMemberNotFound
}

func (m *mockMemberRepo) Create(ctx context.Context, member memberdomain.Member) (memberdomain.Member, error) {
	return member, nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member memberdomain.Member) (memberdomain.Member, error) {
	return member, nil
}

func setupOrderService(t *testing.T) (*service.OrderService, *mockOrderRepo, *mockStoreRepo, *mockMenuRepo, *mockMemberRepo) {
	t.Helper()

	orders := &mockOrderRepo{}
	stores := &mockStoreRepo{}
	menus := &mockMenuRepo{}
	members := &mockMemberRepo{}
	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	svc := service.NewOrderService(orders, stores, menus, members, memberservice.StatusAuthorizer{}, log)

	return svc, orders, stores, menus, members
}

func activeMember(id int64, email string, role memberdomain.Role) memberdomain.Member {
	return memberdomain.Member{
		ID:     id,
		Name:   "member",
		Email:  email,
		Role:   role,
		Status: memberdomain.StatusActive,
	}
}
