// Package model defines the gorm persistence models.
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Revision":
		return db.AutoMigrate(Revision{})
	case "":
		return db.AutoMigrate(Revision{})
	}
	return nil
}
