package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	"github.com/teamnine/humanofdelivery/backend/internal/store/domain"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
	"github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

type mockStoreRepo struct {
	createFunc   func(ctx context.Context, store domain.Store) (domain.Store, error)
	findByIDFunc func(ctx context.Context, id int64) (domain.Store, error)
	findAllFunc  func(ctx context.Context) ([]domain.Store, error)
	updateFunc   func(ctx context.Context, store domain.Store) (domain.Store, error)
}

func (m *mockStoreRepo) Create(ctx context.Context, store domain.Store) (domain.Store, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, store)
	}
	store.ID = 1
	return store, nil
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id int64) (domain.Store, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Store{}, storerepo.ErrStoreNotFound
}

func (m *mockStoreRepo) FindAll(ctx context.Context) ([]domain.Store, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStoreRepo) FindAllByOwnerID(ctx context.Context, ownerID int64) ([]domain.Store, error) {
	return nil, nil
}

func (m *mockStoreRepo) CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error) {
	return 0, nil
}

func (m *mockStoreRepo) Update(ctx context.Context, store domain.Store) (domain.Store, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, store)
	}
	return store, nil
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

func setupStoreService(t *testing.T) (*service.StoreService, *mockStoreRepo, *mockMemberRepo) {
	t.Helper()

	stores := &mockStoreRepo{}
	members := &mockMemberRepo{}
	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	svc := service.NewStoreService(stores, members, memberservice.StatusAuthorizer{}, log)

	return svc, stores, members
}

func owner(id int64, email string) memberdomain.Member {
	return memberdomain.Member{ID: id, Email: email, Role: memberdomain.RoleOwner, Status: memberdomain.StatusActive}
}

func TestStoreService_Create_Success(t *testing.T) {
	svc, stores, members := setupStoreService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return owner(2, email), nil
	}

	var created domain.Store
	stores.createFunc = func(ctx context.Context, store domain.Store) (domain.Store, error) {
		created = store
		store.ID = 10
		return store, nil
	}

	view, err := svc.Create(context.Background(), "lee@example.com", service.CreateInput{Name: "chicken shop"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if view.ID != 10 {
		t.Errorf("expected store id 10, got %d", view.ID)
	}

	if created.Status != domain.StatusOpen {
		t.Errorf("expected new store to open as OPEN, got %s", created.Status)
	}

	if created.OwnerID != 2 {
		t.Errorf("expected owner id 2, got %d", created.OwnerID)
	}
}

func TestStoreService_Create_UserDenied(t *testing.T) {
	svc, stores, members := setupStoreService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return memberdomain.Member{ID: 7, Email: email, Role: memberdomain.RoleUser, Status: memberdomain.StatusActive}, nil
	}
	stores.createFunc = func(ctx context.Context, store domain.Store) (domain.Store, error) {
		t.Fatal("create must not run for a USER principal")
		return domain.Store{}, nil
	}

	_, err := svc.Create(context.Background(), "kim@example.com", service.CreateInput{Name: "chicken shop"})

	if !errors.Is(err, memberservice.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestStoreService_Close_Success(t *testing.T) {
	svc, stores, members := setupStoreService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return owner(2, email), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (domain.Store, error) {
		return domain.Store{ID: id, Status: domain.StatusOpen, OwnerID: 2}, nil
	}

	view, err := svc.Close(context.Background(), "lee@example.com", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if view.Status != domain.StatusClosed {
		t.Errorf("expected status CLOSED, got %s", view.Status)
	}
}

func TestStoreService_Close_NotOwner(t *testing.T) {
	svc, stores, members := setupStoreService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return owner(3, email), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (domain.Store, error) {
		return domain.Store{ID: id, Status: domain.StatusOpen, OwnerID: 2}, nil
	}

	_, err := svc.Close(context.Background(), "other@example.com", 10)

	if !errors.Is(err, memberservice.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestStoreService_Close_AlreadyClosed(t *testing.T) {
	svc, stores, members := setupStoreService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return owner(2, email), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (domain.Store, error) {
		return domain.Store{ID: id, Status: domain.StatusClosed, OwnerID: 2}, nil
	}

	_, err := svc.Close(context.Background(), "lee@example.com", 10)

	if !errors.Is(err, service.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}

func TestStoreService_FindByID_NotFound(t *testing.T) {
	svc, _, _ := setupStoreService(t)

	_, err := svc.FindByID(context.Background(), 999)

	if !errors.Is(err, service.ErrStoreNotFound) {
		t.Errorf("expected ErrStoreNotFound, got %v", err)
	}
}
