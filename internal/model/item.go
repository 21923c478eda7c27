package model

import "time"

// Item is a purchasable catalog entry, independent of any shopping list.
type Item struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	DepartmentID   *int64     `json:"department_id"`
	Qty            int64      `json:"qty"`
	DepartmentName *string    `json:"department_name,omitempty"`
	Modified       *time.Time `json:"modified"`
}
