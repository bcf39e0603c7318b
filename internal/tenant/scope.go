// Package tenant scopes queries to a legal entity. Every tenant-owned
// table carries an entity_id column and every repository query goes
// through this scope.
package tenant

import "gorm.io/gorm"

func Scope(entityID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("entity_id = ?", entityID)
	}
}
