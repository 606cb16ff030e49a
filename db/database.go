package db

import "gorm.io/gorm"

// Database hides the concrete GORM handle so repositories can run
// against Postgres in production and an in-memory sqlite in tests.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }
