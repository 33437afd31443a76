package service

import (
	"context"
	"log/slog"

	"github.com/openshelf/openshelf-server/internal/fixture"
	"github.com/openshelf/openshelf-server/internal/store"
)

// AdminService handles maintenance operations on the whole dataset.
type AdminService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// ResetDatabase drops and recreates the schema, then loads the embedded
// fixture dataset. Everything previously stored is gone afterwards.
func (s *AdminService) ResetDatabase(ctx context.Context) error {
	if err := fixture.Load(ctx, s.store); err != nil {
		return err
	}
	s.logger.Info("database reset from fixtures")
	return nil
}
