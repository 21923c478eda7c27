package model

import "time"

// ShoppingListEntry is a row of the household shopping list, keyed by name:
// adding the same name twice updates the existing entry.
type ShoppingListEntry struct {
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Quantity       string     `json:"quantity"`
	DepartmentID   *int64     `json:"department_id"`
	ItemID         *int64     `json:"item_id"`
	Purchased      bool       `json:"purchased"`
	DepartmentName *string    `json:"department_name,omitempty"`
	ItemName       *string    `json:"item_name,omitempty"`
	Modified       *time.Time `json:"modified"`
}

// Default zone assignment for entries whose department has no zone row for
// the requested store.
const (
	UncategorizedZone    = "Uncategorized"
	UncategorizedZoneSeq = 999
)

// Zone assignment used for every entry when projecting the virtual store.
const (
	GeneralZone    = "General"
	GeneralZoneSeq = 0
)

// ShoppingListRow is the projected, zone-annotated view of one entry for a
// particular store. It is derived, never persisted.
type ShoppingListRow struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Quantity       string  `json:"quantity"`
	Purchased      bool    `json:"purchased"`
	DepartmentID   *int64  `json:"department_id"`
	ItemID         *int64  `json:"item_id"`
	Zone           string  `json:"zone"`
	ZoneSeq        int64   `json:"zone_seq"`
	DepartmentName *string `json:"department_name"`
}
