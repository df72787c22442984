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
	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/service/models/product"
	"github.com/jackc/pgx/v5"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id         int64     `db:"id"`
	Name       string    `db:"name"`
	PriceCents int64     `db:"price_cents"`
	Currency   string    `db:"currency"`
	Stock      int       `db:"stock"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:        p.Id,
		Name:      p.Name,
		Price:     money.FromCents(p.PriceCents),
		Currency:  cur,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.PriceCents,
		&dal.Currency,
		&dal.Stock,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// GetForUpdate loads one product and locks its row until the surrounding
// transaction finishes, so concurrent checkouts serialize per product.
func (r *PostgresProductRepository) GetForUpdate(
	ctx context.Context,
	id int64,
) (product.Product, error) {
	sql := `
		SELECT id, name, price_cents, currency, stock, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	model, err := scanProduct(r.conn.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, &order.ProductNotFoundError{ProductID: id}
		}

		return product.Product{}, fmt.Errorf("failed to get product for update: %w", err)
	}

	return *model, nil
}

// DecrementStock decrements stock by quantity while it stays non-negative.
// A zero row count means the guard failed.
func (r *PostgresProductRepository) DecrementStock(
	ctx context.Context,
	id int64,
	quantity int,
) (int64, error) {
	sql := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`

	tag, err := r.conn.Exec(ctx, sql, id, quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresProductRepository) applyFilter(
	query sq.SelectBuilder,
	filter *product.QueryProductsModel,
) sq.SelectBuilder {
	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	return query
}

// Query retrieves products based on filter criteria.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	query := r.sb.
		Select(
			"id",
			"name",
			"price_cents",
			"currency",
			"stock",
			"created_at",
			"updated_at",
		).
		From("products").
		OrderBy("id")

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
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the total number of products matching the filter.
func (r *PostgresProductRepository) Count(
	ctx context.Context,
	filter *product.QueryProductsModel,
) (int64, error) {
	query := r.applyFilter(r.sb.Select("count(*)").From("products"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
