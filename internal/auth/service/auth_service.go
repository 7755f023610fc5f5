package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AlibekovAA/stride/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/stride/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
	"github.com/AlibekovAA/stride/internal/common/logger"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
	userrepo "github.com/AlibekovAA/stride/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type AuthServiceConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = commoncrypto.NewUUIDGenerator()
	}
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      NewTokenIssuer(cfg.JWTSecret, deps.IDGenerator, cfg.AccessTokenTTL, deps.Clock),
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.Profile, error) {
	email := strings.TrimSpace(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(input); err != nil {
		observeRegistration("invalid")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.Profile{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		observeRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		observeRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return userdomain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			observeRegistration("duplicate")
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "register_email_exists",
			}).Warn("register failed: email already exists")
			return userdomain.Profile{}, ErrEmailTaken
		}
		observeRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		if commonerrors.IsDomainError(err) {
			return userdomain.Profile{}, err
		}
		return userdomain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}

	observeRegistration("success")
	s.log.WithFields(ctx, logger.Fields{
		"email":   email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return user.Profile(), nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input); err != nil {
		observeLogin("invalid")
		return AuthResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		observeLogin("failure")
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		observeLogin("failure")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_wrong_password",
		}).Warn("login failed: password mismatch")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		observeLogin("error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	observeLogin("success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the account of an authenticated caller.
func (s *AuthService) Profile(ctx context.Context, userID userdomain.ID) (userdomain.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "profile_lookup_failed",
		}).Warnf("profile lookup failed: %v", err)
		if commonerrors.IsDomainError(err) {
			return userdomain.Profile{}, err
		}
		return userdomain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}
	return user.Profile(), nil
}
