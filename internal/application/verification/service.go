package verification

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/lookup"
)

const fieldIsVerified = "is_verified"

type Service interface {
	SubmitCode(ctx context.Context, username, code string) error
}

type accountStore interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type service struct {
	repo accountStore
	now  func() time.Time
}

type ServiceDeps struct {
	AccountRepo accountStore
	Now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: deps.AccountRepo, now: now}
}

// Evaluate decides a code submission against the account's stored code.
// The code is compared before the expiry, so a wrong code is reported as
// invalid even when the stored code has also expired.
func Evaluate(a *domain.Account, code string, now time.Time) error {
	if code != a.VerifyCode {
		return domain.ErrInvalidCode
	}
	if now.After(a.VerifyCodeExpiry) {
		return domain.ErrCodeExpired
	}
	return nil
}

// SubmitCode marks the account verified when code matches and is unexpired.
// Submitting again to a verified account repeats the same checks.
func (s *service) SubmitCode(ctx context.Context, username, code string) error {
	decoded, err := url.PathUnescape(strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("malformed username: %w", domain.ErrBadRequest)
	}
	a, err := lookup.Account(ctx, s.repo, decoded)
	if err != nil {
		return err
	}
	if err := Evaluate(a, strings.TrimSpace(code), s.now()); err != nil {
		return err
	}
	return s.repo.Update(ctx, a.AccountID, map[string]interface{}{fieldIsVerified: true})
}
