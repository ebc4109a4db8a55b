package services_test

import (
	"context"

	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/pkg/email"
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of email.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// MockSiteProvider is a mock implementation of services.SiteProvider
type MockSiteProvider struct {
	mock.Mock
}

func (m *MockSiteProvider) Get(ctx context.Context) (*models.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Site), args.Error(1)
}
