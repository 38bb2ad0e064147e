package service

import (
	"context"
	"errors"
	"strings"
	"time"

	commoncrypto "github.com/teamnine/humanofdelivery/backend/internal/common/crypto"
	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	"github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	storedomain "github.com/teamnine/humanofdelivery/backend/internal/store/domain"
)

const (
	deactivatedName         = "deactivated user"
	deactivatedPasswordHash = "deleted_password"
)

// StoreRepository is the read-only slice of the catalog the profile
// aggregation needs.
type StoreRepository interface {
	CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error)
	FindAllByOwnerID(ctx context.Context, ownerID int64) ([]storedomain.Store, error)
}

// SessionInvalidator releases session state on logout.
type SessionInvalidator interface {
	Invalidate(sessionID string)
}

type MemberService struct {
	members    memberrepo.Repository
	stores     StoreRepository
	hasher     commoncrypto.PasswordHasher
	authorizer Authorizer
	sessions   SessionInvalidator
	log        *logger.Logger
}

func NewMemberService(
	members memberrepo.Repository,
	stores StoreRepository,
	hasher commoncrypto.PasswordHasher,
	authorizer Authorizer,
	sessions SessionInvalidator,
	log *logger.Logger,
) *MemberService {
	return &MemberService{
		members:    members,
		stores:     stores,
		hasher:     hasher,
		authorizer: authorizer,
		sessions:   sessions,
		log:        log,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateInput struct {
	Name        string
	Email       string
	Password    string
	NewPassword string
}

// MemberView is the role-neutral projection. It never carries the password
// or its hash.
type MemberView struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"createdAt"`
	ModifiedAt time.Time   `json:"modifiedAt"`
}

type StoreDetail struct {
	ID     int64              `json:"id"`
	Name   string             `json:"name"`
	Status storedomain.Status `json:"status"`
}

// OwnerProfile extends the neutral view with store ownership aggregates.
// ActiveStoreCount counts open stores only; Stores lists every store the
// owner has, open or closed. The asymmetry mirrors the two underlying
// queries and is intentional.
type OwnerProfile struct {
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Role             domain.Role   `json:"role"`
	CreatedAt        time.Time     `json:"createdAt"`
	ModifiedAt       time.Time     `json:"modifiedAt"`
	ActiveStoreCount int64         `json:"activeStoreCount"`
	Stores           []StoreDetail `json:"storeDetails"`
}

// Profile is the role-discriminated result of a profile lookup: exactly one
// of User or Owner is set.
type Profile struct {
	Role  domain.Role
	User  *MemberView
	Owner *OwnerProfile
}

func (s *MemberService) SignUp(ctx context.Context, input SignUpInput) (MemberView, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"role":   string(input.Role),
		"action": "signup_attempt",
	}).Info("signup attempt")

	exists, err := s.members.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_email_check_failed",
		}).Errorf("signup failed: email check error: %v", err)
		return MemberView{}, err
	}
	if exists {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_email_duplicate",
		}).Warn("signup failed: email already registered")
		return MemberView{}, ErrEmailDuplicate
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return MemberView{}, err
	}

	member := domain.Member{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.StatusActive,
	}

	saved, err := s.members.Create(ctx, member)
	if err != nil {
		// The pre-check races with concurrent signups; the unique
		// constraint is the arbiter.
		if errors.Is(err, memberrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_duplicate",
			}).Warn("signup failed: email already registered")
			return MemberView{}, ErrEmailDuplicate
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return MemberView{}, err
	}

	incrementMembersRegistered(saved.Role)
	s.log.WithFields(ctx, logger.Fields{
		"email":   saved.Email,
		"user_id": saved.ID,
		"action":  "signup_success",
	}).Info("signup success")

	return toView(saved), nil
}

// Login is a pure credential check; establishing the session is the HTTP
// layer's responsibility.
func (s *MemberService) Login(ctx context.Context, input LoginInput) (MemberView, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	member, err := s.members.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			incrementMemberLoginFailures("user_not_found")
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return MemberView{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return MemberView{}, err
	}

	if err := s.hasher.Compare(member.PasswordHash, input.Password); err != nil {
		incrementMemberLoginFailures("password_incorrect")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return MemberView{}, ErrPasswordIncorrect
	}

	incrementMemberLogins()
	s.log.WithFields(ctx, logger.Fields{
		"email":   member.Email,
		"user_id": member.ID,
		"action":  "login_success",
	}).Info("login success")

	return toView(member), nil
}

// Logout invalidates the session if one exists. A missing session is a
// no-op, not an error.
func (s *MemberService) Logout(sessionID string) {
	if sessionID == "" {
		return
	}
	s.sessions.Invalidate(sessionID)
	s.log.WithFields(nil, logger.Fields{
		"action": "logout",
	}).Info("session invalidated")
}

func (s *MemberService) FindUserByID(ctx context.Context, id int64) (Profile, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}

	incrementProfileLookups(member.Role)

	if member.Role == domain.RoleOwner {
		activeCount, err := s.stores.CountActiveByOwnerID(ctx, member.ID)
		if err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": member.ID,
				"action":  "profile_store_count_failed",
			}).Errorf("profile lookup failed: store count error: %v", err)
			return Profile{}, err
		}

		stores, err := s.stores.FindAllByOwnerID(ctx, member.ID)
		if err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": member.ID,
				"action":  "profile_store_list_failed",
			}).Errorf("profile lookup failed: store list error: %v", err)
			return Profile{}, err
		}

		details := make([]StoreDetail, len(stores))
		for i, st := range stores {
			details[i] = StoreDetail{
				ID:     st.ID,
				Name:   st.Name,
				Status: st.Status,
			}
		}

		return Profile{
			Role: member.Role,
			Owner: &OwnerProfile{
				Name:             member.Name,
				Email:            member.Email,
				Role:             member.Role,
				CreatedAt:        member.CreatedAt,
				ModifiedAt:       member.ModifiedAt,
				ActiveStoreCount: activeCount,
				Stores:           details,
			},
		}, nil
	}

	view := toView(member)
	return Profile{Role: member.Role, User: &view}, nil
}

// UpdateUserByID mutates the acting principal's own record. The principal's
// email comes from the session and is threaded in explicitly.
func (s *MemberService) UpdateUserByID(ctx context.Context, principalEmail string, targetID int64, input UpdateInput) (MemberView, error) {
	login, err := s.members.FindByEmail(ctx, principalEmail)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			return MemberView{}, ErrUserNotFound
		}
		return MemberView{}, err
	}

	if err := s.authorizer.Authorize(login); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": login.ID,
			"action":  "update_unauthorized",
		}).Warn("update failed: principal not authorized")
		return MemberView{}, err
	}

	if login.ID != targetID {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   login.ID,
			"target_id": targetID,
			"action":    "update_permission_denied",
		}).Warn("update failed: permission denied")
		return MemberView{}, ErrPermissionDenied
	}

	member, err := s.members.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			return MemberView{}, ErrUserNotFound
		}
		return MemberView{}, err
	}

	if err := s.hasher.Compare(member.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": member.ID,
			"action":  "update_invalid_password",
		}).Warn("update failed: invalid password")
		return MemberView{}, ErrPasswordIncorrect
	}

	// Blank fields leave the stored value untouched.
	if strings.TrimSpace(input.Name) != "" {
		member.Name = input.Name
	}
	if strings.TrimSpace(input.Email) != "" {
		member.Email = input.Email
	}
	if strings.TrimSpace(input.NewPassword) != "" {
		hash, err := s.hasher.Hash(input.NewPassword)
		if err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": member.ID,
				"action":  "update_hash_failed",
			}).Errorf("update failed: password hash error: %v", err)
			return MemberView{}, err
		}
		member.PasswordHash = hash
	}

	saved, err := s.members.Update(ctx, member)
	if err != nil {
		if errors.Is(err, memberrepo.ErrEmailAlreadyExists) {
			return MemberView{}, ErrEmailDuplicate
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": member.ID,
			"action":  "update_save_failed",
		}).Errorf("update failed: %v", err)
		return MemberView{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": saved.ID,
		"action":  "update_success",
	}).Info("update success")

	return toView(saved), nil
}

// DeleteUserByID deactivates the target account: status goes to DELETED and
// name/password are overwritten with fixed sentinels. A second delete on the
// same account is an error, never a silent no-op.
func (s *MemberService) DeleteUserByID(ctx context.Context, targetID int64, password string) error {
	member, err := s.members.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, memberrepo.ErrMemberNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.authorizer.Authorize(member); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": member.ID,
			"action":  "delete_unauthorized",
		}).Warn("delete failed: not authorized")
		return err
	}

	if err := s.hasher.Compare(member.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": member.ID,
			"action":  "delete_invalid_password",
		}).Warn("delete failed: invalid password")
		return ErrPasswordIncorrect
	}

	if member.Status == domain.StatusDeleted {
		return ErrUserDeactivated
	}

	member.Status = domain.StatusDeleted
	member.Name = deactivatedName
	member.PasswordHash = deactivatedPasswordHash

	if _, err := s.members.Update(ctx, member); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": member.ID,
			"action":  "delete_save_failed",
		}).Errorf("delete failed: %v", err)
		return err
	}

	incrementMembersDeactivated()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": member.ID,
		"action":  "delete_success",
	}).Info("member deactivated")

	return nil
}

func toView(member domain.Member) MemberView {
	return MemberView{
		ID:         member.ID,
		Name:       member.Name,
		Email:      member.Email,
		Role:       member.Role,
		CreatedAt:  member.CreatedAt,
		ModifiedAt: member.ModifiedAt,
	}
}
