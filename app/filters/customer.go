package filters

import (
	"time"

	"gorm.io/gorm"
)

type CustomerFilter struct {
	Name         *string
	Email        *string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	PhonePattern *string
}

func (f *CustomerFilter) Apply(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	if hasText(f.Name) {
		db = db.Where("LOWER(customers.name) LIKE ? ESCAPE '!'", containsPattern(*f.Name))
	}
	if hasText(f.Email) {
		db = db.Where("LOWER(customers.email) LIKE ? ESCAPE '!'", containsPattern(*f.Email))
	}
	if f.CreatedAtGte != nil {
		db = db.Where("customers.created_at >= ?", f.CreatedAtGte.UTC())
	}
	if f.CreatedAtLte != nil {
		db = db.Where("customers.created_at <= ?", f.CreatedAtLte.UTC())
	}
	if hasText(f.PhonePattern) {
		db = db.Where("customers.phone LIKE ? ESCAPE '!'", prefixPattern(*f.PhonePattern))
	}
	return db
}
