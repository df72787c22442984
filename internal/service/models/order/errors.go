package order

import (
	"errors"
	"fmt"
)

// ErrTransactionFailed signals a commit or write-conflict failure. No partial
// state persists, so the caller may retry the whole operation.
var ErrTransactionFailed = errors.New("order transaction failed")

// ErrOrderNotFound signals that the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError reports malformed checkout input. It is raised before any
// database access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid checkout request: " + e.Reason
}

// ProductNotFoundError reports a requested product that is missing from the
// catalog.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError reports a requested quantity exceeding available
// stock. The message format is a caller-facing contract: callers match on
// "Insufficient stock for <productName>".
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for " + e.ProductName
}

// InvalidTransitionError reports a disallowed status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}
