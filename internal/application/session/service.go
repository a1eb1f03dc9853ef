package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/lookup"
	"golang.org/x/crypto/bcrypt"
)

type SignInResult struct {
	Token   string
	Session domain.SessionView
}

type Service interface {
	SignIn(ctx context.Context, identifier, password string) (*SignInResult, error)
}

type accountStore interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type tokenSigner interface {
	Sign(c domain.TokenClaims) (string, error)
}

type service struct {
	repo   accountStore
	signer tokenSigner
}

type ServiceDeps struct {
	AccountRepo accountStore
	Signer      tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.AccountRepo, signer: deps.Signer}
}

// SignIn authenticates by username or email. Verification is checked before the
// password, so an unverified account is reported as such whatever password is given.
func (s *service) SignIn(ctx context.Context, identifier, password string) (*SignInResult, error) {
	a, err := s.resolve(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	if !a.IsVerified {
		return nil, domain.ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	claims := DeriveToken(a)
	token, err := s.signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &SignInResult{Token: token, Session: DeriveSession(claims)}, nil
}

func (s *service) resolve(ctx context.Context, identifier string) (*domain.Account, error) {
	a, err := lookup.Account(ctx, s.repo, identifier)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	a, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	return a, err
}

// DeriveToken projects an account onto the claims carried by its session token.
func DeriveToken(a *domain.Account) domain.TokenClaims {
	return domain.TokenClaims{
		AccountID:       a.AccountID,
		Username:        a.Username,
		IsVerified:      a.IsVerified,
		AcceptsMessages: a.AcceptsMessages,
	}
}

// DeriveSession projects token claims onto the client-visible session.
func DeriveSession(c domain.TokenClaims) domain.SessionView {
	return domain.SessionView{
		AccountID:           c.AccountID,
		Username:            c.Username,
		IsVerified:          c.IsVerified,
		IsAcceptingMessages: c.AcceptsMessages,
	}
}
