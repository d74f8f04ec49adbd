package cases

import (
	"context"

	"github.com/dmitrijs2005/supportcase/internal/server/models"
)

// Repository is the ownership-scoped case store. Every method takes the
// owner explicitly and implementations must carry it in the query predicate
// itself, never as an after-the-fact comparison.
type Repository interface {
	List(ctx context.Context, ownerID string) ([]*models.Case, error)
	Create(ctx context.Context, c *models.Case) (*models.Case, error)
	Update(ctx context.Context, ownerID, caseID, title, description string) (*models.Case, error)
	Delete(ctx context.Context, ownerID, caseID string) error
}
