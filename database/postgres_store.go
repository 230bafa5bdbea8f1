package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	connTimeOut = 10 * time.Second
)

type postgresStore struct {
	DB *sqlx.DB
}

func NewPostgresStore(dsn string) *postgresStore {
	db := sqlx.MustConnect("postgres", dsn)
	return &postgresStore{
		DB: db,
	}
}

func (d *postgresStore) Close() {
	d.DB.Close()
}

func (d *postgresStore) SaveCheckEntry(entry *CheckEntry) error {
	query := `INSERT INTO whitelist_checker_checks
	(id, session_id, requested_at, inserted_at, check_duration_ms, address, status, is_whitelisted, error, ip_hash, origin) VALUES (:id, :session_id, :requested_at, :inserted_at, :check_duration_ms, :address, :status, :is_whitelisted, :error, :ip_hash, :origin)`
	ctx, cancel := context.WithTimeout(context.Background(), connTimeOut)
	defer cancel()
	_, err := d.DB.NamedExecContext(ctx, query, entry)
	return err
}
