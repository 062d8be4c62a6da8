package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/pkg/validate"
)

// Customer is a CRM contact. Email is globally unique.
type Customer struct {
	ID        uint      `gorm:"primaryKey"                       json:"id"`
	Name      string    `gorm:"size:255;not null"                json:"name"  validate:"required,max=255"`
	Email     string    `gorm:"size:254;not null;uniqueIndex"    json:"email" validate:"required,email,max=254"`
	Phone     *string   `gorm:"size:20"                          json:"phone" validate:"nullable,max=20"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create;index"   json:"created_at"`
}

// Validate checks the record the way every save path does.
func (c *Customer) Validate() error {
	if c.Phone != nil && *c.Phone != "" && !validate.IsPhone(*c.Phone) {
		return &ValidationError{Field: "phone", Message: MsgInvalidPhone}
	}
	if errs := validate.Struct(c); validate.HasErrors(errs) {
		field, msg := errs.First()
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}

// BeforeSave runs Validate on every create and save.
func (c *Customer) BeforeSave(*gorm.DB) error {
	if c.Phone != nil && *c.Phone == "" {
		c.Phone = nil
	}
	return c.Validate()
}
