package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User          UserRepository
	Article       ArticleRepository
	Request       RequestRepository
	FAQ           FAQRepository
	MedicalReport MedicalReportRepository
	AuditLog      AuditLogRepository
	Tx            TransactionManager
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Article:       NewArticleRepository(db),
		Request:       NewRequestRepository(db),
		FAQ:           NewFAQRepository(db),
		MedicalReport: NewMedicalReportRepository(db),
		AuditLog:      NewAuditLogRepository(db),
		Tx:            NewTransactionManager(db),
	}
}

type contextKey string

const txKey contextKey = "sqlx_tx"

// TransactionManager runs fn inside one database transaction. Repositories
// called with txCtx join that transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// executor returns the transaction bound to ctx, or db when there is none.
func executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
