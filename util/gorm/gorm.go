package gorm

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DefaultConfig = &gorm.Config{Logger: LogrusLogger}

func NewPostgres(conn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(conn), DefaultConfig)
}

type Closer gorm.DB

func (c *Closer) Unmask() *gorm.DB {
	return (*gorm.DB)(c)
}

func (c *Closer) Close() error {
	db, err := c.Unmask().DB()
	if err != nil {
		return err
	}

	return db.Close()
}
