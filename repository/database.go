package repository

import (
	"fmt"

	"github.com/alfar-programer/Store-B-sub000/config"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Order{},
	)
}

// Repositories bundles the stores handed to handlers at start-up.
type Repositories struct {
	Users      *Users
	Products   *Products
	Categories *Categories
	Orders     *Orders
	Stats      *Stats
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUsers(db),
		Products:   NewProducts(db),
		Categories: NewCategories(db),
		Orders:     NewOrders(db),
		Stats:      NewStats(db),
	}
}
