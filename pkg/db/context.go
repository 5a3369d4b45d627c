package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Evolveum/integration-catalog-sub000/pkg/constants"
	"github.com/Evolveum/integration-catalog-sub000/pkg/logger"
)

// txFactory carries the sql transaction plus resolution state through a
// request context.
type txFactory struct {
	resolved          bool
	rollbackFlag      bool
	tx                *sql.Tx
	txid              int64
	postCommitActions []func()
}

// newTransaction begins a transaction on the factory's underlying connection
// and records the backend transaction id for log correlation.
func (f *ConnectionFactory) newTransaction() (*txFactory, error) {
	sqlDB, err := f.DB.DB()
	if err != nil {
		return nil, err
	}
	tx, err := sqlDB.Begin()
	if err != nil {
		return nil, err
	}

	var txid int64
	row := tx.QueryRow("select txid_current()")
	if row != nil {
		// the mock driver returns no rows here, ignore the scan failure
		_ = row.Scan(&txid)
	}

	return &txFactory{
		tx:   tx,
		txid: txid,
	}, nil
}

// NewContext returns a new context with transaction stored in it.
// Upon error, the original context is still returned along with an error
func (f *ConnectionFactory) NewContext(ctx context.Context) (context.Context, error) {
	tx, err := f.newTransaction()
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, constants.TransactionKey, tx)
	ctx = context.WithValue(ctx, constants.TransactionIDkey, tx.txid) //nolint

	return ctx, nil
}

// TxContext creates a new transaction context from context.Background()
func (f *ConnectionFactory) TxContext() (ctx context.Context, err error) {
	return f.NewContext(context.Background())
}

// Resolve resolves the current transaction according to the rollback flag.
// It is a no-op when the transaction has already been resolved.
func Resolve(ctx context.Context) {
	ulog := logger.NewUHCLogger(ctx)
	tx, ok := ctx.Value(constants.TransactionKey).(*txFactory)
	if !ok {
		ulog.Errorf("Could not retrieve transaction from context")
		return
	}
	if tx.resolved {
		return
	}
	tx.resolved = true

	if tx.rollbackFlag {
		if err := tx.tx.Rollback(); err != nil {
			ulog.Errorf("Could not rollback transaction: %v", err)
		}
		return
	}

	if err := tx.tx.Commit(); err != nil {
		ulog.Errorf("Could not commit transaction: %v", err)
		return
	}
	for _, f := range tx.postCommitActions {
		f()
	}
}

// MarkForRollback flags the transaction stored in the context for rollback and
// logs whatever error caused the rollback
func MarkForRollback(ctx context.Context, err error) {
	ulog := logger.NewUHCLogger(ctx)
	transaction, ok := ctx.Value(constants.TransactionKey).(*txFactory)
	if !ok {
		ulog.Errorf("Could not mark transaction for rollback: could not retrieve transaction from context")
		return
	}
	transaction.rollbackFlag = true
	ulog.Infof("Marked transaction for rollback, err: %v", err)
}

// AddPostCommitAction registers a callback to run after the transaction in the
// context commits successfully. Callbacks never run on rollback.
func AddPostCommitAction(ctx context.Context, f func()) error {
	tx, ok := ctx.Value(constants.TransactionKey).(*txFactory)
	if !ok {
		return fmt.Errorf("could not retrieve transaction from context")
	}
	tx.postCommitActions = append(tx.postCommitActions, f)
	return nil
}

// FromContext returns the transaction stored in the given context
func FromContext(ctx context.Context) (*sql.Tx, error) {
	transaction, ok := ctx.Value(constants.TransactionKey).(*txFactory)
	if !ok {
		return nil, fmt.Errorf("could not retrieve transaction from context")
	}
	return transaction.tx, nil
}
