package catalog

import (
	"database/sql"
)

// Repository persists the catalogue so the console survives restarts
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new catalogue repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every menu item belonging to a canteen, oldest first.
func (r *Repository) GetAll(canteenID string) ([]MenuItem, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, price, image_url, category,
		       stock_type, stock_count, is_enabled, is_special, canteen_id
		FROM menu_items
		WHERE canteen_id = ?
		ORDER BY rowid
	`, canteenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var it MenuItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Price, &it.ImageURL,
			&it.Category, &it.StockType, &it.StockCount,
			&it.IsEnabled, &it.IsSpecial, &it.CanteenID,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert inserts or replaces a menu item.
func (r *Repository) Upsert(it MenuItem) error {
	_, err := r.db.Exec(`
		INSERT INTO menu_items
			(id, name, description, price, image_url, category,
			 stock_type, stock_count, is_enabled, is_special, canteen_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			image_url = excluded.image_url,
			category = excluded.category,
			stock_type = excluded.stock_type,
			stock_count = excluded.stock_count,
			is_enabled = excluded.is_enabled,
			is_special = excluded.is_special,
			canteen_id = excluded.canteen_id
	`, it.ID, it.Name, it.Description, it.Price, it.ImageURL, it.Category,
		it.StockType, it.StockCount, it.IsEnabled, it.IsSpecial, it.CanteenID)
	return err
}

// Delete removes a menu item.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM menu_items WHERE id = ?", id)
	return err
}

//   EZEATZ API is the backend for the EZEATZ admin console, the college canteen management dashboard.
//   EZEATZ API Copyright (C) 2025 EZEATZ
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
