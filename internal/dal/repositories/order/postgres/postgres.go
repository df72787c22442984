package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ecomlabs/checkout/internal/dal/money"
	"github.com/ecomlabs/checkout/internal/dal/postgres"
	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id              int64     `db:"id"`
	UserId          int64     `db:"user_id"`
	Status          string    `db:"status"`
	TotalPriceCents int64     `db:"total_price_cents"`
	Currency        string    `db:"currency"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:         o.Id,
		UserID:     o.UserId,
		Status:     status,
		TotalPrice: money.FromCents(o.TotalPriceCents),
		Currency:   cur,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		LineItems:  []lineitem.LineItem{}, // Will be populated separately
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:              o.ID,
		UserId:          o.UserID,
		Status:          o.Status.String(),
		TotalPriceCents: money.ToCents(o.TotalPrice),
		Currency:        o.Currency.String(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const orderColumns = "id, user_id, status, total_price_cents, currency, created_at, updated_at"

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.Status,
		&dal.TotalPriceCents,
		&dal.Currency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists a new order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql := `
		INSERT INTO orders (user_id, status, total_price_cents, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderColumns

	model, err := scanOrder(r.conn.QueryRow(ctx, sql,
		dal.UserId,
		dal.Status,
		dal.TotalPriceCents,
		dal.Currency,
		dal.CreatedAt,
		dal.UpdatedAt,
	))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model.LineItems = append(model.LineItems, o.LineItems...)

	return *model, nil
}

func (r *PostgresOrderRepository) applyFilter(
	query sq.SelectBuilder,
	filter *order.QueryOrdersModel,
) sq.SelectBuilder {
	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	return query
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(
			"id",
			"user_id",
			"status",
			"total_price_cents",
			"currency",
			"created_at",
			"updated_at",
		).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	query = r.applyFilter(query, filter)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the total number of orders matching the filter.
func (r *PostgresOrderRepository) Count(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) (int64, error) {
	query := r.applyFilter(r.sb.Select("count(*)").From("orders"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// GetForUpdate loads one order and locks its row until the surrounding
// transaction finishes.
func (r *PostgresOrderRepository) GetForUpdate(ctx context.Context, id int64) (order.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	model, err := scanOrder(r.conn.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrOrderNotFound
		}

		return order.Order{}, fmt.Errorf("failed to get order for update: %w", err)
	}

	return *model, nil
}

// UpdateStatus persists a status transition.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
	updatedAt time.Time,
) error {
	sql, args, err := r.sb.Update("orders").
		Set("status", status.String()).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}
