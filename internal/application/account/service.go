package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/id"
	"github.com/go-anon-inbox/internal/pkg/lookup"
	"github.com/go-anon-inbox/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash     = "password_hash"
	fieldVerifyCode       = "verify_code"
	fieldVerifyCodeExpiry = "verify_code_expiry"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	CheckUsername(ctx context.Context, username string) error
}

type accountStore interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type codeIssuer interface {
	Issue() (string, time.Time, error)
}

type verificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, username, code string) error
}

type service struct {
	repo   accountStore
	issuer codeIssuer
	mailer verificationMailer
	now    func() time.Time
}

type ServiceDeps struct {
	AccountRepo accountStore
	Issuer      codeIssuer
	Mailer      verificationMailer
	Now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:   deps.AccountRepo,
		issuer: deps.Issuer,
		mailer: deps.Mailer,
		now:    now,
	}
}

// Register creates an unverified account, or refreshes the credentials and code
// of an existing unverified one with the same email, then mails the code.
// A failed delivery leaves the stored account as written.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := lookup.Verified(ctx, s.repo, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.IsVerified {
		return domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, expiry, err := s.issuer.Issue()
	if err != nil {
		return err
	}

	greetName := username
	if existing != nil {
		// The retry keeps the username chosen at first signup.
		greetName = existing.Username
		err = s.repo.Update(ctx, existing.AccountID, map[string]interface{}{
			fieldPasswordHash:     string(hash),
			fieldVerifyCode:       code,
			fieldVerifyCodeExpiry: expiry,
		})
		if err != nil {
			return err
		}
	} else {
		now := s.now().UTC()
		a := &domain.Account{
			AccountID:        id.New(),
			Username:         username,
			Email:            email,
			PasswordHash:     string(hash),
			VerifyCode:       code,
			VerifyCodeExpiry: expiry,
			AcceptsMessages:  true,
			Messages:         []domain.Message{},
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, greetName, code); err != nil {
		slog.Error("verification email failed", "email", email, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}

// CheckUsername reports whether username is well formed and free to register.
func (s *service) CheckUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if !validate.Username(username) {
		return fmt.Errorf("username must be 2-20 characters and use only letters, numbers, or underscores: %w", domain.ErrBadRequest)
	}
	if _, err := lookup.Verified(ctx, s.repo, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
