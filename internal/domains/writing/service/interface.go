package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/policy"
)

// ServiceInterface is the writing facade. Every operation takes the
// viewer explicitly and runs the access policy itself; handlers are
// never trusted to have filtered anything.
type ServiceInterface interface {
	Create(ctx context.Context, viewer policy.Viewer, req model.CreateWritingRequest) (*model.WritingResponse, error)
	Update(ctx context.Context, viewer policy.Viewer, id uuid.UUID, req model.UpdateWritingRequest) (*model.WritingResponse, error)
	Delete(ctx context.Context, viewer policy.Viewer, id uuid.UUID) error
	Get(ctx context.Context, viewer policy.Viewer, id uuid.UUID) (*model.WritingResponse, error)
	Read(ctx context.Context, viewer policy.Viewer, id uuid.UUID) (*model.ReadWritingResponse, error)
	List(ctx context.Context, viewer policy.Viewer, req model.ListWritingsRequest) (*model.ListWritingsResponse, error)
}
