package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ecomlabs/checkout/internal/dal/money"
	"github.com/ecomlabs/checkout/internal/dal/postgres"
	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
)

// LineItemDal represents the line item data access layer model.
type LineItemDal struct {
	Id             int64     `db:"id"`
	OrderId        int64     `db:"order_id"`
	ProductId      int64     `db:"product_id"`
	Quantity       int       `db:"quantity"`
	ProductTitle   string    `db:"product_title"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	Currency       string    `db:"currency"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts LineItemDal to the service layer LineItem model.
func (li *LineItemDal) ToModel() (*lineitem.LineItem, error) {
	cur, err := currency.ParseCurrency(li.Currency)
	if err != nil {
		return nil, err
	}

	return &lineitem.LineItem{
		ID:           li.Id,
		OrderID:      li.OrderId,
		ProductID:    li.ProductId,
		Quantity:     li.Quantity,
		ProductTitle: li.ProductTitle,
		UnitPrice:    money.FromCents(li.UnitPriceCents),
		Currency:     cur,
		CreatedAt:    li.CreatedAt,
		UpdatedAt:    li.UpdatedAt,
	}, nil
}

// PostgresLineItemRepository represents a Postgres line item repository.
type PostgresLineItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresLineItemRepository creates a new Postgres line item repository.
func NewPostgresLineItemRepository(conn postgres.Conn) *PostgresLineItemRepository {
	return &PostgresLineItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts the line items of an order in input order and returns
// them with generated ids.
func (r *PostgresLineItemRepository) BulkInsert(
	ctx context.Context,
	items []lineitem.LineItem,
) ([]lineitem.LineItem, error) {
	if len(items) == 0 {
		return []lineitem.LineItem{}, nil
	}

	sql := `
		INSERT INTO line_items (
			order_id,
			product_id,
			quantity,
			product_title,
			unit_price_cents,
			currency,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			quantity,
			product_title,
			unit_price_cents,
			currency,
			created_at,
			updated_at
		FROM unnest($1::bigint[], $2::bigint[], $3::int[], $4::text[], $5::bigint[], $6::text[], $7::timestamptz[], $8::timestamptz[])
		AS t(order_id, product_id, quantity, product_title, unit_price_cents, currency, created_at, updated_at)
		RETURNING
			id,
			order_id,
			product_id,
			quantity,
			product_title,
			unit_price_cents,
			currency,
			created_at,
			updated_at
	`

	orderIds := make([]int64, len(items))
	productIds := make([]int64, len(items))
	quantities := make([]int32, len(items))
	productTitles := make([]string, len(items))
	unitPriceCents := make([]int64, len(items))
	currencies := make([]string, len(items))
	createdAts := make([]time.Time, len(items))
	updatedAts := make([]time.Time, len(items))

	for i, item := range items {
		orderIds[i] = item.OrderID
		productIds[i] = item.ProductID
		quantities[i] = int32(item.Quantity)
		productTitles[i] = item.ProductTitle
		unitPriceCents[i] = money.ToCents(item.UnitPrice)
		currencies[i] = item.Currency.String()
		createdAts[i] = item.CreatedAt
		updatedAts[i] = item.UpdatedAt
	}

	rows, err := r.conn.Query(ctx, sql,
		orderIds,
		productIds,
		quantities,
		productTitles,
		unitPriceCents,
		currencies,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert line items: %w", err)
	}
	defer rows.Close()

	var result []lineitem.LineItem
	for rows.Next() {
		var dal LineItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.ProductTitle,
			&dal.UnitPriceCents,
			&dal.Currency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert line item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves line items based on filter criteria.
func (r *PostgresLineItemRepository) Query(
	ctx context.Context,
	filter *lineitem.QueryLineItemsModel,
) ([]lineitem.LineItem, error) {
	query := r.sb.
		Select(
			"id",
			"order_id",
			"product_id",
			"quantity",
			"product_title",
			"unit_price_cents",
			"currency",
			"created_at",
			"updated_at",
		).
		From("line_items").
		OrderBy("order_id", "id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

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
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var result []lineitem.LineItem
	for rows.Next() {
		var dal LineItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.ProductTitle,
			&dal.UnitPriceCents,
			&dal.Currency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert line item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
