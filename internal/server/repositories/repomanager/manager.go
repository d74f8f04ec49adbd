package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/supportcase/internal/dbx"
	"github.com/dmitrijs2005/supportcase/internal/server/repositories/cases"
	"github.com/dmitrijs2005/supportcase/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cases(db dbx.DBTX) cases.Repository
}
