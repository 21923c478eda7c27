package model

import "time"

// Department is a global catalog entry, independent of any store.
type Department struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Modified *time.Time `json:"modified"`
}
