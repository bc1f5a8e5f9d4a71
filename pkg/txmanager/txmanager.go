// Package txmanager runs functions inside a database transaction stored in
// the context, so repositories pick it up through GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTransaction возвращается при ошибках begin/commit
var ErrTransaction = errors.New("txmanager: transaction error")

// DBExecutor общий интерфейс *sql.DB и *sql.Tx, достаточный для репозиториев
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// IsInTransaction возвращает true, если контекст несет активную транзакцию
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// Manager управляет транзакциями поверх *sql.DB
type Manager struct {
	db        *sql.DB
	isolation sql.IsolationLevel
}

// NewTransactionManager создает менеджер. Для postgres используем Serializable,
// для sqlite - уровень по умолчанию (драйвер сам сериализует запись)
func NewTransactionManager(db *sql.DB, serializable bool) *Manager {
	isolation := sql.LevelDefault
	if serializable {
		isolation = sql.LevelSerializable
	}
	return &Manager{db: db, isolation: isolation}
}

// Do выполняет fn в транзакции. Вложенный вызов переиспользует внешнюю транзакцию
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: m.isolation})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}
	return nil
}
