package model

// Currency is immutable reference data seeded by migrations.
type Currency struct {
	ID         int64
	Name       string
	MinorScale int32
}
