package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/supportcase/internal/common"
	"github.com/dmitrijs2005/supportcase/internal/server/models"
	"github.com/dmitrijs2005/supportcase/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CaseService provides the ownership-scoped case operations. The ownerID
// argument always comes from the authenticated request identity; callers
// never take it from the request payload.
type CaseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCaseService constructs a CaseService over the given DB and repositories.
func NewCaseService(db *sql.DB, m repomanager.RepositoryManager) *CaseService {
	return &CaseService{db: db, repomanager: m}
}

// List returns all cases owned by ownerID.
func (s *CaseService) List(ctx context.Context, ownerID string) ([]*models.Case, error) {
	repo := s.repomanager.Cases(s.db)
	result, err := repo.List(ctx, ownerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Create stores a new case stamped with ownerID. Empty title or description
// is common.ErrorValidation.
func (s *CaseService) Create(ctx context.Context, ownerID, title, description string) (*models.Case, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, common.ErrorValidation
	}

	c := &models.Case{ID: uuid.NewString(), OwnerID: ownerID, Title: title, Description: description}
	repo := s.repomanager.Cases(s.db)
	created, err := repo.Create(ctx, c)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Update replaces title/description of an owned case. A case that does not
// exist under ownerID is common.ErrorNotFound, whoever it belongs to.
func (s *CaseService) Update(ctx context.Context, ownerID, caseID, title, description string) (*models.Case, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Cases(s.db)
	updated, err := repo.Update(ctx, ownerID, caseID, title, description)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// Delete removes an owned case permanently. Same not-found semantics as
// Update; deleting twice yields common.ErrorNotFound the second time.
func (s *CaseService) Delete(ctx context.Context, ownerID, caseID string) error {
	repo := s.repomanager.Cases(s.db)
	if err := repo.Delete(ctx, ownerID, caseID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
