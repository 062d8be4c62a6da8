package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/pkg/metrics"
)

const startedAtKey = "crm:started_at"

// registerMetrics hooks gorm's callback chain so every statement feeds
// metrics.DBQueryDuration, labelled by operation.
func registerMetrics(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("crm:metrics_before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("crm:metrics_after_create", after("insert")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("crm:metrics_before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("crm:metrics_after_query", after("select")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("crm:metrics_before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("crm:metrics_after_update", after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("crm:metrics_before_delete", before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("crm:metrics_after_delete", after("delete"))
}

func before(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(operation, start)
		}
	}
}
