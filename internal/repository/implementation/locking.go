package implementation

import "gorm.io/gorm/clause"

// lockForUpdate is a shared SELECT ... FOR UPDATE clause for read-merge-write
// sections that must not interleave.
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
