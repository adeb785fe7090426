package locations

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

type MockContentGenerator struct{ mock.Mock }

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func (m *MockContentGenerator) Model() string {
	args := m.Called()
	return args.String(0)
}

type MockRepository struct{ mock.Mock }

func (m *MockRepository) SaveInteraction(ctx context.Context, interaction types.LocationInteraction) (uuid.UUID, error) {
	args := m.Called(ctx, interaction)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockService struct{ mock.Mock }

func (m *MockService) GenerateLocations(ctx context.Context, prompt string, isRoute bool) ([]types.LocationPoint, error) {
	args := m.Called(ctx, prompt, isRoute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.LocationPoint), args.Error(1)
}

func (m *MockService) Generate(ctx context.Context, req types.LocationRequest) (*types.LocationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LocationResult), args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}},
		},
	}
}
