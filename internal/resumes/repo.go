package resumes

import (
	"context"
	"time"
)

// Repo persists resumes. Every lookup is scoped by owner; a resume owned by
// someone else is reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	Update(ctx context.Context, userID, resumeID string, patch Patch, updatedAt time.Time) (Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
}
