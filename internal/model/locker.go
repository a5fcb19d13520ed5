package model

import "time"

// Locker sizes.  Stored as uppercase strings in the lockers.size column.
const (
    SizeSmall  = "SMALL"
    SizeMedium = "MEDIUM"
    SizeLarge  = "LARGE"
)

// Locker statuses.  AVAILABLE lockers can be reserved; RESERVED lockers
// are bound to exactly one active reservation; MAINTENANCE lockers are
// taken out of rotation by an admin and only an admin can bring them back.
const (
    LockerAvailable   = "AVAILABLE"
    LockerReserved    = "RESERVED"
    LockerMaintenance = "MAINTENANCE"
)

// ValidSize reports whether s names a known locker size.
func ValidSize(s string) bool {
    return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// ValidLockerStatus reports whether s names a known locker status.
func ValidLockerStatus(s string) bool {
    return s == LockerAvailable || s == LockerReserved || s == LockerMaintenance
}

// Locker represents a physical rental locker as stored in the `lockers`
// table.  The number is the label painted on the door and is unique
// across the installation; the ID is the surrogate database key.
//
// Fields:
//  ID         – primary key identifier.
//  Number     – unique, human-visible locker number.
//  Size       – one of SMALL, MEDIUM, LARGE.
//  Status     – one of AVAILABLE, RESERVED, MAINTENANCE.
//  PriceCents – per-day rental rate in cents, never negative.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – timestamp of last update.
type Locker struct {
    ID         uint64    `json:"id"`          // lockers.id
    Number     uint32    `json:"number"`      // lockers.number
    Size       string    `json:"size"`        // lockers.size
    Status     string    `json:"status"`      // lockers.status
    PriceCents uint32    `json:"price_cents"` // lockers.price_cents
    CreatedAt  time.Time `json:"created_at"`  // lockers.created_at
    UpdatedAt  time.Time `json:"updated_at"`  // lockers.updated_at
}
