package uow

import (
	"context"

	"github.com/ecomlabs/checkout/internal/dal/interfaces/ilineitemrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/ioutboxrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/ecomlabs/checkout/internal/dal/postgres"
	lineitemrepo "github.com/ecomlabs/checkout/internal/dal/repositories/lineitem/postgres"
	orderrepo "github.com/ecomlabs/checkout/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/ecomlabs/checkout/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/ecomlabs/checkout/internal/dal/repositories/product/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type unitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo    iorderrepo.IOrderRepository
	lineItemRepo ilineitemrepo.ILineItemRepository
	productRepo  iproductrepo.IProductRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the pool. After Begin, every
// repository it exposes runs on the same transaction.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.lineItemRepo = lineitemrepo.NewPostgresLineItemRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) LineItemRepository() ilineitemrepo.ILineItemRepository {
	return u.lineItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after a successful Commit
// returns pgx.ErrTxClosed, which callers ignore.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
