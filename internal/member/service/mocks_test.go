package service_test

import (
	"context"
	"testing"

	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	"github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	"github.com/teamnine/humanofdelivery/backend/internal/member/service"
	storedomain "github.com/teamnine/humanofdelivery/backend/internal/store/domain"
)

type mockMemberRepo struct {
	existsByEmailFunc func(ctx context.Context, email string) (bool, error)
	findByEmailFunc   func(ctx context.Context, email string) (domain.Member, error)
	findByIDFunc      func(ctx context.Context, id int64) (domain.Member, error)
	createFunc        func(ctx context.Context, member domain.Member) (domain.Member, error)
	updateFunc        func(ctx context.Context, member domain.Member) (domain.Member, error)
}

func (m *mockMemberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFunc != nil {
		return m.existsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (domain.Member, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.Member{}, memberrepo.ErrMemberNotFound
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id int64) (domain.Member, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Member{}, memberrepo.ErrMemberNotFound
}

func (m *mockMemberRepo) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, member)
	}
	member.ID = 1
	return member, nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member domain.Member) (domain.Member, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, member)
	}
	return member, nil
}

type mockStoreRepo struct {
	countActiveByOwnerIDFunc func(ctx context.Context, ownerID int64) (int64, error)
	findAllByOwnerIDFunc     func(ctx context.Context, ownerID int64) ([]storedomain.Store, error)
}

func (m *mockStoreRepo) CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error) {
	if m.countActiveByOwnerIDFunc != nil {
		return m.countActiveByOwnerIDFunc(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockStoreRepo) FindAllByOwnerID(ctx context.Context, ownerID int64) ([]storedomain.Store, error) {
	if m.findAllByOwnerIDFunc != nil {
		return m.findAllByOwnerIDFunc(ctx, ownerID)
	}
	return nil, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockSessions struct {
	invalidateFunc func(sessionID string)
	invalidated    []string
}

func (m *mockSessions) Invalidate(sessionID string) {
	m.invalidated = append(m.invalidated, sessionID)
	if m.invalidateFunc != nil {
		m.invalidateFunc(sessionID)
	}
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

func setupMemberService(t *testing.T) (*service.MemberService, *mockMemberRepo, *mockStoreRepo, *mockHasher, *mockSessions) {
	t.Helper()

	memberRepo := &mockMemberRepo{}
	storeRepo := &mockStoreRepo{}
	hasher := &mockHasher{}
	sessions := &mockSessions{}
	log := newTestLogger(t)

	svc := service.NewMemberService(memberRepo, storeRepo, hasher, service.StatusAuthorizer{}, sessions, log)

	return svc, memberRepo, storeRepo, hasher, sessions
}
