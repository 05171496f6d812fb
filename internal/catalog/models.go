package catalog

import (
	"errors"
	"fmt"
)

// StockType distinguishes counted stock from always-available items.
type StockType string

const (
	StockUnlimited StockType = "unlimited"
	StockLimited   StockType = "limited"
)

// Category groups menu items in the console.
type Category string

const (
	CategoryBreakfast  Category = "breakfast"
	CategoryMainCourse Category = "main_course"
	CategorySnacks     Category = "snacks"
	CategoryFastFood   Category = "fast_food"
	CategoryBeverages  Category = "beverages"
	CategoryDesserts   Category = "desserts"
)

var (
	// ErrNotFound is returned for unknown menu item identifiers.
	ErrNotFound = errors.New("menu item not found")

	// ErrOutOfStock is returned when an enable attempt is refused because a
	// limited item has zero stock.
	ErrOutOfStock = errors.New("cannot enable an out-of-stock item")

	// ErrDuplicateID is returned when inserting an item whose ID is taken.
	ErrDuplicateID = errors.New("menu item id already exists")
)

// MenuItem is one sellable catalogue entry.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"` // smallest currency unit
	ImageURL    string    `json:"imageUrl"`
	Category    Category  `json:"category"`
	StockType   StockType `json:"stockType"`
	StockCount  int       `json:"stockCount"`
	IsEnabled   bool      `json:"isEnabled"`
	IsSpecial   bool      `json:"isSpecial"`
	CanteenID   string    `json:"canteenId"`
}

// InStock reports whether the item can currently be sold. Unlimited items are
// always in stock.
func (i MenuItem) InStock() bool {
	return i.StockType == StockUnlimited || i.StockCount > 0
}

// Validate returns the list of validation problems, empty when the item is
// acceptable.
func (i MenuItem) Validate() []string {
	var problems []string

	if len(i.Name) < 2 {
		problems = append(problems, "name must be at least 2 characters")
	}
	if i.Price < 1 {
		problems = append(problems, "price must be at least 1")
	}
	if i.StockType != StockUnlimited && i.StockType != StockLimited {
		problems = append(problems, fmt.Sprintf("unknown stock type %q", i.StockType))
	}
	if i.StockType == StockLimited && i.StockCount < 0 {
		problems = append(problems, "stock count must be 0 or more for limited items")
	}
	return problems
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
