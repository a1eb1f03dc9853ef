package message

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) ListByUsername(ctx context.Context, username string) ([]domain.Account, error) {
	args := m.Called(ctx, username)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}
func (m *mockAccountStore) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	return m.Called(ctx, accountID, updates).Error(0)
}
func (m *mockAccountStore) AppendMessage(ctx context.Context, accountID string, msg domain.Message) error {
	return m.Called(ctx, accountID, msg).Error(0)
}
func (m *mockAccountStore) RemoveMessage(ctx context.Context, accountID, messageID string) error {
	return m.Called(ctx, accountID, messageID).Error(0)
}

// --- helpers ---

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *mockAccountStore) Service {
	return NewService(ServiceDeps{AccountRepo: repo, Now: func() time.Time { return now }})
}

func bob(accepts bool) []domain.Account {
	return []domain.Account{{AccountID: "b1", Username: "bob", IsVerified: true, AcceptsMessages: accepts}}
}

// --- Send ---

func TestSend_AppendsTrimmedMessage(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ListByUsername", mock.Anything, "bob").Return(bob(true), nil)
	repo.On("AppendMessage", mock.Anything, "b1", mock.MatchedBy(func(m domain.Message) bool {
		return m.Content == "You are awesome!" && m.CreatedAt.Equal(now) && id.Valid(m.MessageID)
	})).Return(nil)

	require.NoError(t, newService(repo).Send(context.Background(), "bob", "  You are awesome!  "))
	repo.AssertExpectations(t)
}

func TestSend_ContentBounds(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ListByUsername", mock.Anything, "bob").Return(bob(true), nil)
	repo.On("AppendMessage", mock.Anything, "b1", mock.Anything).Return(nil)
	svc := newService(repo)

	assert.True(t, errors.Is(svc.Send(context.Background(), "bob", "too short"), domain.ErrBadRequest))
	assert.True(t, errors.Is(svc.Send(context.Background(), "bob", "   short    "), domain.ErrBadRequest))
	assert.NoError(t, svc.Send(context.Background(), "bob", strings.Repeat("a", 10)))
	assert.NoError(t, svc.Send(context.Background(), "bob", strings.Repeat("é", 300)))
	assert.True(t, errors.Is(svc.Send(context.Background(), "bob", strings.Repeat("a", 301)), domain.ErrBadRequest))
}

func TestSend_UnknownRecipient(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ListByUsername", mock.Anything, "ghost").Return([]domain.Account{}, nil)

	err := newService(repo).Send(context.Background(), "ghost", "hello there friend")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSend_NotAccepting(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ListByUsername", mock.Anything, "bob").Return(bob(false), nil)

	err := newService(repo).Send(context.Background(), "bob", "hello there friend")
	assert.True(t, errors.Is(err, domain.ErrNotAccepting))
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything)
}

// --- List ---

func TestList_NewestFirstStable(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "b1").Return(&domain.Account{Messages: []domain.Message{
		{MessageID: "old", CreatedAt: now.Add(-time.Hour)},
		{MessageID: "tie1", CreatedAt: now},
		{MessageID: "tie2", CreatedAt: now},
		{MessageID: "mid", CreatedAt: now.Add(-time.Minute)},
	}}, nil)

	msgs, err := newService(repo).List(context.Background(), "b1")
	require.NoError(t, err)
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.MessageID
	}
	assert.Equal(t, []string{"tie1", "tie2", "mid", "old"}, ids)
}

func TestList_EmptyInbox(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "b1").Return(&domain.Account{}, nil)

	msgs, err := newService(repo).List(context.Background(), "b1")
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

// --- Delete ---

func TestDelete_MalformedID(t *testing.T) {
	repo := &mockAccountStore{}
	err := newService(repo).Delete(context.Background(), "b1", "not-an-id")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	repo.AssertNotCalled(t, "RemoveMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_PropagatesNotFound(t *testing.T) {
	mid := id.New()
	repo := &mockAccountStore{}
	repo.On("RemoveMessage", mock.Anything, "b1", mid).Return(domain.ErrNotFound)

	err := newService(repo).Delete(context.Background(), "b1", mid)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- acceptance ---

func TestAcceptance(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "b1").Return(&domain.Account{AcceptsMessages: true}, nil)
	repo.On("Update", mock.Anything, "b1", map[string]interface{}{fieldAcceptsMessages: false}).Return(nil)
	svc := newService(repo)

	accepts, err := svc.GetAcceptance(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, accepts)
	require.NoError(t, svc.SetAcceptance(context.Background(), "b1", false))
	repo.AssertExpectations(t)
}

// --- Profile / Suggest ---

func TestProfile(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ListByUsername", mock.Anything, "bob").Return(bob(false), nil)
	repo.On("ListByUsername", mock.Anything, "pending").Return([]domain.Account{{Username: "pending"}}, nil)
	svc := newService(repo)

	p, err := svc.Profile(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{Username: "bob", IsAcceptingMessages: false}, *p)

	_, err = svc.Profile(context.Background(), "pending")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSuggest_ThreeDistinctPrompts(t *testing.T) {
	parts := strings.Split(newService(&mockAccountStore{}).Suggest(), "||")
	require.Len(t, parts, 3)
	assert.NotEqual(t, parts[0], parts[1])
	assert.NotEqual(t, parts[1], parts[2])
	for _, p := range parts {
		assert.Contains(t, suggestionPool, p)
	}
}
