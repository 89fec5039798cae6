package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockEmail struct{ mock.Mock }

func (m *mockEmail) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, body string) error {
	return m.Called(ctx, to, body).Error(0)
}

type mockChat struct{ mock.Mock }

func (m *mockChat) SendChat(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}
