package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/dropwatch"
)

// Compile-time interface verification.
var _ dropwatch.Sink = (*DeliveryService)(nil)

// DeliveryService implements dropwatch.Sink using SQLite. Rows are numbered
// consecutively from 1 in append order.
type DeliveryService struct {
	db *DB
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(db *DB) *DeliveryService {
	return &DeliveryService{db: db}
}

// Append stores rec after the current last row and sets rec.Row.
func (s *DeliveryService) Append(ctx context.Context, rec *dropwatch.DeliveryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	fields := rec.Fields()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO deliveries (row, timestamp, link, source)
		SELECT COALESCE(MAX(row), 0) + 1, ?, ?, ? FROM deliveries
	`, fields[0], fields[1], fields[2])
	if err != nil {
		return err
	}

	row, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.Row = int(row)
	return nil
}

// Rows returns the number of stored rows.
func (s *DeliveryService) Rows(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM deliveries").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindDeliveries returns stored rows in row order.
func (s *DeliveryService) FindDeliveries(ctx context.Context, limit, offset int) ([]*dropwatch.DeliveryRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT row, timestamp, link, source FROM deliveries ORDER BY row")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*dropwatch.DeliveryRecord
	for rows.Next() {
		var rec dropwatch.DeliveryRecord
		var timestamp string

		if err := rows.Scan(&rec.Row, &timestamp, &rec.Link, &rec.Source); err != nil {
			return nil, err
		}

		rec.Timestamp, err = parseTimestamp(timestamp, "timestamp")
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
