package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomlabs/checkout/internal/dal/interfaces/ilineitemrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/ioutboxrepo"
	"github.com/ecomlabs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/ecomlabs/checkout/internal/dal/postgres"
	"github.com/ecomlabs/checkout/internal/dal/uow"
	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/service/models/outbox"
	"github.com/ecomlabs/checkout/internal/service/models/pagination"
	"github.com/ecomlabs/checkout/internal/service/models/product"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// CheckoutService places orders with atomic stock reservation and serves
// order history and catalog reads.
type CheckoutService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	LineItemRepository() ilineitemrepo.ILineItemRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

func (s *CheckoutService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	s := &CheckoutService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CheckoutService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CheckoutService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *CheckoutService) {
		s.uowFactory = factory
	}
}

func validatePlaceOrder(userID int64, items []order.RequestedItem) error {
	if userID <= 0 {
		return &order.ValidationError{Reason: "missing user id"}
	}

	if len(items) == 0 {
		return &order.ValidationError{Reason: "order must contain at least one item"}
	}

	for _, item := range items {
		if item.ProductID <= 0 {
			return &order.ValidationError{Reason: "missing product id"}
		}
		if item.Quantity <= 0 {
			return &order.ValidationError{
				Reason: fmt.Sprintf("quantity for product %d must be positive", item.ProductID),
			}
		}
	}

	return nil
}

// classifyTxError maps write-conflict and rollback errors onto
// order.ErrTransactionFailed so callers know the whole call is retryable.
func classifyTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsTransactionRollback(pgErr.Code) {
		return fmt.Errorf("%w: %v", order.ErrTransactionFailed, err)
	}

	return err
}

// PlaceOrder validates the requested items against live stock, decrements
// stock and creates the order inside a single transaction. On any failure
// nothing is persisted. Items are reserved in input order and the first
// failing item aborts the whole call. Duplicate product ids stay separate
// line items and are validated against the stock remaining after the earlier
// entries.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context,
	userID int64,
	items []order.RequestedItem,
) (order.Order, error) {
	if err := validatePlaceOrder(userID, items); err != nil {
		return order.Order{}, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", order.ErrTransactionFailed, err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = work.Rollback(ctx)
	}()

	lineItems := make([]lineitem.LineItem, 0, len(items))
	for _, item := range items {
		p, err := work.ProductRepository().GetForUpdate(ctx, item.ProductID)
		if err != nil {
			return order.Order{}, classifyTxError(err)
		}

		if p.Stock < item.Quantity {
			return order.Order{}, &order.InsufficientStockError{
				ProductName: p.Name,
				Requested:   item.Quantity,
				Available:   p.Stock,
			}
		}

		affected, err := work.ProductRepository().DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return order.Order{}, classifyTxError(err)
		}
		if affected == 0 {
			// The row lock is held, so the guard can only fail if stock
			// moved underneath us.
			return order.Order{}, &order.InsufficientStockError{
				ProductName: p.Name,
				Requested:   item.Quantity,
				Available:   p.Stock,
			}
		}

		lineItems = append(lineItems, lineitem.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			ProductTitle: p.Name,
			UnitPrice:    p.Price,
			Currency:     p.Currency,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	cur := currency.CurrencyUSD
	if len(lineItems) > 0 {
		cur = lineItems[0].Currency
	}

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:     userID,
		Status:     order.StatusPending,
		TotalPrice: order.ComputeTotal(lineItems),
		Currency:   cur,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return order.Order{}, classifyTxError(err)
	}

	for i := range lineItems {
		lineItems[i].OrderID = inserted.ID
	}

	insertedItems, err := work.LineItemRepository().BulkInsert(ctx, lineItems)
	if err != nil {
		return order.Order{}, classifyTxError(err)
	}
	inserted.LineItems = insertedItems

	msg, err := outbox.NewOrderCreatedMessage(inserted, now)
	if err != nil {
		return order.Order{}, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return order.Order{}, classifyTxError(err)
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", order.ErrTransactionFailed, err)
	}

	return inserted, nil
}

// ListOrders retrieves one page of a user's orders, newest first, with line
// items attached.
func (s *CheckoutService) ListOrders(
	ctx context.Context,
	userID int64,
	page int,
	pageSize int,
) (pagination.Page[order.Order], error) {
	var empty pagination.Page[order.Order]

	if userID <= 0 {
		return empty, &order.ValidationError{Reason: "missing user id"}
	}

	page, pageSize = pagination.Normalize(page, pageSize)

	work := s.newUOW()

	filter := &order.QueryOrdersModel{
		UserIds: []int64{userID},
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	}

	totalItems, err := work.OrderRepository().Count(ctx, filter)
	if err != nil {
		return empty, err
	}

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return empty, err
	}

	if len(orders) == 0 {
		return pagination.NewPage([]order.Order{}, page, pageSize, totalItems), nil
	}

	itemFilter := &lineitem.QueryLineItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}

	items, err := work.LineItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return empty, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].LineItems = append(orders[i].LineItems, item)
			}
		}
	}

	return pagination.NewPage(orders, page, pageSize, totalItems), nil
}

// UpdateOrderStatus advances an order through its fulfillment lifecycle. The
// transition table is enforced; cancellation does not restore stock.
func (s *CheckoutService) UpdateOrderStatus(
	ctx context.Context,
	orderID int64,
	next order.Status,
) (order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", order.ErrTransactionFailed, err)
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	ord, err := work.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return order.Order{}, classifyTxError(err)
	}

	if !ord.Status.CanTransitionTo(next) {
		return order.Order{}, &order.InvalidTransitionError{From: ord.Status, To: next}
	}

	if err := work.OrderRepository().UpdateStatus(ctx, orderID, next, now); err != nil {
		return order.Order{}, classifyTxError(err)
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", order.ErrTransactionFailed, err)
	}

	ord.Status = next
	ord.UpdatedAt = now

	return ord, nil
}

// ListProducts retrieves one page of the catalog.
func (s *CheckoutService) ListProducts(
	ctx context.Context,
	page int,
	pageSize int,
) (pagination.Page[product.Product], error) {
	var empty pagination.Page[product.Product]

	page, pageSize = pagination.Normalize(page, pageSize)

	work := s.newUOW()

	filter := &product.QueryProductsModel{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	totalItems, err := work.ProductRepository().Count(ctx, filter)
	if err != nil {
		return empty, err
	}

	products, err := work.ProductRepository().Query(ctx, filter)
	if err != nil {
		return empty, err
	}

	return pagination.NewPage(products, page, pageSize, totalItems), nil
}
