package store

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasknest/app/models"
)

// Open opens (creating if necessary) the sqlite database at path and
// migrates the schema. Pass ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if path != ":memory:" {
		// sqlite ships with foreign keys off; the cascade constraints on
		// the models depend on them, so enable per connection via the DSN.
		dsn = path + "?_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	if err := db.AutoMigrate(&models.User{}, &models.List{}, &models.Task{}); err != nil {
		return nil, err
	}
	return db, nil
}
