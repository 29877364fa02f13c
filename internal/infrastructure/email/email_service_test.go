package email

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/configs"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
)

type fakeSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSender) SendWithContext(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, m)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func newService(t *testing.T, s sender) *EmailService {
	t.Helper()
	svc, err := NewEmailService(&configs.EmailConfig{FromEmail: "shop@example.com", FromName: "Shop", StoreName: "Acme Home", BaseURL: "https://shop.example.com"}, nil)
	require.NoError(t, err)
	svc.client = s
	return svc
}

func TestSendWelcomeEmail_RendersTemplate(t *testing.T) {
	fs := &fakeSender{status: 202}
	svc := newService(t, fs)

	err := svc.SendWelcomeEmail(context.Background(), &user.User{Email: "jane@example.com", FullName: "Jane"})
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)
	m := fs.sent[0]
	assert.Equal(t, "Welcome to Acme Home", m.Subject)
	require.NotEmpty(t, m.Content)
	body := m.Content[len(m.Content)-1].Value
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "https://shop.example.com")
}

func TestSendWelcomeEmail_DisabledWithoutKey(t *testing.T) {
	svc := newService(t, nil)
	require.NoError(t, svc.SendWelcomeEmail(context.Background(), &user.User{Email: "a@b.com"}))
}

func TestSendWelcomeEmail_Failures(t *testing.T) {
	svc := newService(t, &fakeSender{err: errors.New("dial tcp: timeout")})
	assert.Error(t, svc.SendWelcomeEmail(context.Background(), &user.User{Email: "a@b.com"}))

	svc = newService(t, &fakeSender{status: 401})
	assert.ErrorContains(t, svc.SendWelcomeEmail(context.Background(), &user.User{Email: "a@b.com"}), "401")
}
