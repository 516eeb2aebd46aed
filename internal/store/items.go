package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unilost/unilost/internal/model"
)

// CreateItem creates a new reported item. ReportedBy and ReporterID are the
// display-name snapshot and reference of the reporting user; DateReported
// is assigned by the database.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, category, status, location, contact_info, reported_by, reporter_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Description, item.Category, item.Status,
		item.Location, item.ContactInfo, item.ReportedBy, item.ReporterID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if absent.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, description, category, status, location, contact_info,
		        reported_by, reporter_id, verified, date_reported
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Title, &item.Description, &item.Category, &item.Status,
		&item.Location, &item.ContactInfo, &item.ReportedBy, &item.ReporterID,
		&item.Verified, &item.DateReported)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, newest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, category, status, location, contact_info,
		        reported_by, reporter_id, verified, date_reported
		 FROM items ORDER BY date_reported DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Category, &item.Status,
			&item.Location, &item.ContactInfo, &item.ReportedBy, &item.ReporterID,
			&item.Verified, &item.DateReported); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem writes an item's mutable fields. Callers merge partial updates
// into a fetched item before calling.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category = ?, status = ?,
		        location = ?, contact_info = ?, verified = ?
		 WHERE id = ?`,
		item.Title, item.Description, item.Category, item.Status,
		item.Location, item.ContactInfo, item.Verified, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Claims against it are removed by the schema's
// ON DELETE CASCADE.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ToggleVerified flips an item's verified flag and returns the updated item.
func ToggleVerified(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET verified = NOT verified WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling item verification: %w", err)
	}
	return GetItem(ctx, db, id)
}
