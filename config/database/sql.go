package database

import (
	"context"

	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/jmoiron/sqlx"

	// register sql drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLite driver name registered by modernc.org/sqlite
const SQLite = "sqlite"

type sqlInstance struct {
	read, write *sqlx.DB
}

func (s *sqlInstance) ReadDB() *sqlx.DB {
	return s.read
}
func (s *sqlInstance) WriteDB() *sqlx.DB {
	return s.write
}
func (s *sqlInstance) Disconnect(ctx context.Context) (err error) {
	deferFunc := logger.LogWithDefer("sql: disconnect...")
	defer deferFunc()

	if s.read != s.write {
		if err := s.read.Close(); err != nil {
			return err
		}
	}
	return s.write.Close()
}

// InitSQLDatabase return sql db read & write instance, driver is "postgres" or "sqlite"
func InitSQLDatabase(driverName, readDSN, writeDSN string) interfaces.SQLDatabase {
	deferFunc := logger.LogWithDefer("Load SQL connection...")
	defer deferFunc()

	inst := new(sqlInstance)
	var err error
	inst.write, err = Open(driverName, writeDSN)
	if err != nil {
		panic("SQL Write: " + err.Error())
	}

	// sqlite is a single file, share the connection pool
	if driverName == SQLite || readDSN == writeDSN {
		inst.read = inst.write
		return inst
	}

	inst.read, err = Open(driverName, readDSN)
	if err != nil {
		panic("SQL Read: " + err.Error())
	}
	return inst
}

// Open connect and ping sql database
func Open(driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if driverName == SQLite {
		// serialize writer, in-memory database exist per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLInstance wrap opened database as read & write instance
func NewSQLInstance(db *sqlx.DB) interfaces.SQLDatabase {
	return &sqlInstance{read: db, write: db}
}
