package owner

import "gorm.io/gorm"

// Scope restricts a query to records belonging to one owner. Every employee
// query goes through this so one principal can never see another's records.
func Scope(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
