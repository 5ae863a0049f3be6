package postgres

import (
	"deliverytracking/internal/adapters/out/postgres/deliveryrepo"
	"deliverytracking/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.ItemDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
