package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-anon-inbox/internal/config"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

// --- mocks ---

type captureSender struct{ sent []Message }

func (c *captureSender) Send(_ context.Context, m Message) error {
	c.sent = append(c.sent, m)
	return nil
}

type mockDialer struct{ mock.Mock }

func (m *mockDialer) DialAndSend(msgs ...*gomail.Message) error {
	return m.Called(msgs).Error(0)
}

type mockMailgun struct {
	mock.Mock
	impl *mailgun.MailgunImpl
}

func (m *mockMailgun) NewMessage(from, subject, text string, to ...string) *mailgun.Message {
	m.Called(from, subject, text, to)
	return m.impl.NewMessage(from, subject, text, to...)
}
func (m *mockMailgun) Send(ctx context.Context, msg *mailgun.Message) (string, string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.String(1), args.Error(2)
}

func testConfig() *config.Config {
	return &config.Config{AppName: "Mystery Message", AppURL: "http://localhost:3000", MailFrom: "noreply@example.com"}
}

// --- VerificationMailer ---

func TestSendVerificationEmail_ContainsCode(t *testing.T) {
	cs := &captureSender{}
	vm := NewVerificationMailer(testConfig(), cs, time.Hour)

	require.NoError(t, vm.SendVerificationEmail(context.Background(), "alice@example.com", "alice", "482913"))

	require.Len(t, cs.sent, 1)
	m := cs.sent[0]
	assert.Equal(t, "alice@example.com", m.To)
	assert.Equal(t, "Mystery Message | Verification Code", m.Subject)
	assert.Contains(t, m.HTML, "482913")
	assert.Contains(t, m.Text, "482913")
	assert.Contains(t, m.Text, "1 hour")
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 hours", humanDuration(2*time.Hour))
	assert.Equal(t, "30 minutes", humanDuration(30*time.Minute))
}

// --- SMTP ---

func TestSMTPSender_Send(t *testing.T) {
	d := &mockDialer{}
	d.On("DialAndSend", mock.MatchedBy(func(msgs []*gomail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("To")[0] == "bob@example.com" &&
			msgs[0].GetHeader("From")[0] == "noreply@example.com"
	})).Return(nil)

	err := NewSMTPSender(d, "noreply@example.com").Send(context.Background(), Message{To: "bob@example.com", Subject: "hi", Text: "body"})
	require.NoError(t, err)
	d.AssertExpectations(t)
}

func TestSMTPSender_WrapsError(t *testing.T) {
	d := &mockDialer{}
	d.On("DialAndSend", mock.Anything).Return(errors.New("connection refused"))

	err := NewSMTPSender(d, "noreply@example.com").Send(context.Background(), Message{To: "bob@example.com"})
	assert.ErrorContains(t, err, "smtp send")
}

// --- Mailgun ---

func TestMailgunSender_Send(t *testing.T) {
	mg := &mockMailgun{impl: mailgun.NewMailgun("mg.example.com", "key")}
	mg.On("NewMessage", "noreply@example.com", "hi", "body", []string{"bob@example.com"}).Return()
	mg.On("Send", mock.Anything, mock.Anything).Return("Queued", "<id@mg>", nil)

	err := NewMailgunSender(mg, "noreply@example.com").Send(context.Background(), Message{To: "bob@example.com", Subject: "hi", Text: "body", HTML: "<p>body</p>"})
	require.NoError(t, err)
	mg.AssertExpectations(t)
}

func TestMailgunSender_WrapsError(t *testing.T) {
	mg := &mockMailgun{impl: mailgun.NewMailgun("mg.example.com", "key")}
	mg.On("NewMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mg.On("Send", mock.Anything, mock.Anything).Return("", "", errors.New("401 unauthorized"))

	err := NewMailgunSender(mg, "noreply@example.com").Send(context.Background(), Message{To: "bob@example.com"})
	assert.ErrorContains(t, err, "mailgun send")
}

// --- NewSender ---

func TestNewSender_Providers(t *testing.T) {
	cfg := testConfig()

	cfg.MailProvider = "log"
	s, err := NewSender(cfg)
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)

	cfg.MailProvider = "smtp"
	s, err = NewSender(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	cfg.MailProvider = "mailgun"
	_, err = NewSender(cfg)
	assert.Error(t, err)

	cfg.MailgunDomain, cfg.MailgunAPIKey = "mg.example.com", "key"
	s, err = NewSender(cfg)
	require.NoError(t, err)
	assert.IsType(t, &MailgunSender{}, s)

	cfg.MailProvider = "pigeon"
	_, err = NewSender(cfg)
	assert.ErrorContains(t, err, "unknown mail provider")
}
