package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "initModels",
		Method:      http.MethodGet,
		Path:        "/initModels",
		Summary:     "Reset database",
		Description: "Drops all tables, recreates the schema, and loads the seed fixtures",
		Tags:        []string{"Admin"},
	}, s.handleInitModels)
}

func (s *Server) handleInitModels(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Admin.ResetDatabase(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Database initialized"}}, nil
}
