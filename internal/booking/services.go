package booking

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/logging"
	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
)

// FallbackServices keeps the flow usable when the services read fails.
func FallbackServices() []models.Service {
	return []models.Service{
		{ID: 1, Name: "Custom Design", Description: "Full custom nail design", Price: decimal.NewFromInt(45), DurationMinutes: 60, IsActive: true},
		{ID: 2, Name: "Ready-Made Set", Description: "Choose from our collection", Price: decimal.NewFromInt(35), DurationMinutes: 30, IsActive: true},
		{ID: 3, Name: "Repair & Reapply", Description: "Fix or reapply existing set", Price: decimal.NewFromInt(25), DurationMinutes: 30, IsActive: true},
	}
}

// LoadServices fetches the active services, substituting the hard-coded
// fallback set on a read failure. The error is logged, never surfaced.
func LoadServices(ctx context.Context, repo repository.Services) []models.Service {
	services, err := repo.ListActive(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("services fetch failed, using fallback", "error", err)
		return FallbackServices()
	}
	return services
}
