package message

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/id"
	"github.com/go-anon-inbox/internal/pkg/lookup"
)

const (
	fieldAcceptsMessages = "accepts_messages"

	minContent = 10
	maxContent = 300
)

type Service interface {
	Send(ctx context.Context, username, content string) error
	List(ctx context.Context, accountID string) ([]domain.Message, error)
	Delete(ctx context.Context, accountID, messageID string) error
	GetAcceptance(ctx context.Context, accountID string) (bool, error)
	SetAcceptance(ctx context.Context, accountID string, accepts bool) error
	Profile(ctx context.Context, username string) (*domain.Profile, error)
	Suggest() string
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	AppendMessage(ctx context.Context, accountID string, m domain.Message) error
	RemoveMessage(ctx context.Context, accountID, messageID string) error
}

type service struct {
	repo    accountStore
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
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
	return &service{repo: deps.AccountRepo, now: now, shuffle: rand.Shuffle}
}

// Send appends an anonymous message to the inbox of username. Nothing about the
// sender is stored.
func (s *service) Send(ctx context.Context, username, content string) error {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < minContent || n > maxContent {
		return fmt.Errorf("content must be between %d and %d characters: %w", minContent, maxContent, domain.ErrBadRequest)
	}
	a, err := lookup.Account(ctx, s.repo, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if !a.AcceptsMessages {
		return domain.ErrNotAccepting
	}
	return s.repo.AppendMessage(ctx, a.AccountID, domain.Message{
		MessageID: id.New(),
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
}

// List returns the owner's inbox, newest first. Messages with equal timestamps
// keep their insertion order.
func (s *service) List(ctx context.Context, accountID string) ([]domain.Message, error) {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	msgs := make([]domain.Message, len(a.Messages))
	copy(msgs, a.Messages)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *service) Delete(ctx context.Context, accountID, messageID string) error {
	if !id.Valid(messageID) {
		return fmt.Errorf("invalid message id: %w", domain.ErrBadRequest)
	}
	return s.repo.RemoveMessage(ctx, accountID, messageID)
}

func (s *service) GetAcceptance(ctx context.Context, accountID string) (bool, error) {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return false, err
	}
	return a.AcceptsMessages, nil
}

func (s *service) SetAcceptance(ctx context.Context, accountID string, accepts bool) error {
	return s.repo.Update(ctx, accountID, map[string]interface{}{fieldAcceptsMessages: accepts})
}

// Profile returns the public view behind a shareable link. Only verified
// accounts have one.
func (s *service) Profile(ctx context.Context, username string) (*domain.Profile, error) {
	a, err := lookup.Verified(ctx, s.repo, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return &domain.Profile{Username: a.Username, IsAcceptingMessages: a.AcceptsMessages}, nil
}

var suggestionPool = []string{
	"What's a hobby you've recently started?",
	"If you could have dinner with any historical figure, who would it be?",
	"What's a simple thing that makes you happy?",
	"What's the best piece of advice you've ever received?",
	"If you could live anywhere in the world, where would it be?",
	"What's a skill you'd love to learn this year?",
	"What book or movie changed the way you think?",
	"What's your favorite way to spend a rainy day?",
	"What's something you're proud of but rarely talk about?",
	"If you could master any instrument overnight, which one would you pick?",
}

const suggestionCount = 3

// Suggest returns three conversation starters separated by "||".
func (s *service) Suggest() string {
	picks := make([]string, len(suggestionPool))
	copy(picks, suggestionPool)
	s.shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	return strings.Join(picks[:suggestionCount], "||")
}
