package model

import (
	"strconv"
	"time"
)

// AllStoreID is the reserved identifier of the virtual "All" store. It never
// exists as a persisted row and is recognized by value alone.
const AllStoreID int64 = -1

// AllStore is the virtual store returned for AllStoreID. It is listed first,
// cannot be renamed or deleted, and owns no zone rows.
var AllStore = Store{ID: AllStoreID, Name: "All"}

type Store struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Modified *time.Time `json:"modified"`
}

// IsAllStore reports whether a raw store identifier denotes the virtual
// store. Non-numeric identifiers never do.
func IsAllStore(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && n == AllStoreID
}

// StoreZone assigns one department to a named, ordered zone of a store's
// layout. Several rows may share a sequence and name to form one logical
// zone.
type StoreZone struct {
	StoreID        int64      `json:"store_id"`
	ZoneSequence   int64      `json:"zone_sequence"`
	ZoneName       string     `json:"zone_name"`
	DepartmentID   int64      `json:"department_id"`
	DepartmentName string     `json:"department_name,omitempty"`
	Modified       *time.Time `json:"modified"`
}
