package http

import (
	"context"
	"time"

	"github.com/go-anon-inbox/internal/domain"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	AppendMessage(ctx context.Context, accountID string, m domain.Message) error
	RemoveMessage(ctx context.Context, accountID, messageID string) error
}

// TokenProvider signs and verifies session tokens.
type TokenProvider interface {
	Sign(c domain.TokenClaims) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
	Expiry() time.Duration
}

// VerificationMailer delivers signup verification codes.
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, username, code string) error
}

// CodeIssuer produces verification codes and their expiry.
type CodeIssuer interface {
	Issue() (string, time.Time, error)
}
