package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_uid          TEXT PRIMARY KEY,
	track_number       TEXT NOT NULL,
	entry              TEXT NOT NULL,
	locale             TEXT NOT NULL,
	internal_signature TEXT NOT NULL DEFAULT '',
	customer_id        TEXT NOT NULL,
	delivery_service   TEXT NOT NULL,
	shardkey           TEXT NOT NULL DEFAULT '',
	sm_id              INT NOT NULL DEFAULT 0,
	date_created       TIMESTAMPTZ NOT NULL,
	oof_shard          TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS deliveries (
	order_uid TEXT PRIMARY KEY REFERENCES orders(order_uid) ON DELETE CASCADE,
	name      TEXT NOT NULL,
	phone     TEXT NOT NULL,
	zip       TEXT NOT NULL,
	city      TEXT NOT NULL,
	address   TEXT NOT NULL,
	region    TEXT NOT NULL,
	email     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS payments (
	order_uid     TEXT PRIMARY KEY REFERENCES orders(order_uid) ON DELETE CASCADE,
	transaction   TEXT NOT NULL,
	request_id    TEXT NOT NULL DEFAULT '',
	currency      TEXT NOT NULL,
	provider      TEXT NOT NULL,
	amount        INT NOT NULL,
	payment_dt    BIGINT NOT NULL,
	bank          TEXT NOT NULL,
	delivery_cost INT NOT NULL,
	goods_total   INT NOT NULL,
	custom_fee    INT NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	order_uid    TEXT NOT NULL REFERENCES orders(order_uid) ON DELETE CASCADE,
	position     INT NOT NULL,
	chrt_id      BIGINT NOT NULL,
	track_number TEXT NOT NULL,
	price        INT NOT NULL,
	rid          TEXT NOT NULL,
	name         TEXT NOT NULL,
	sale         INT NOT NULL,
	size         TEXT NOT NULL,
	total_price  INT NOT NULL,
	nm_id        BIGINT NOT NULL,
	brand        TEXT NOT NULL,
	status       INT NOT NULL,
	PRIMARY KEY (order_uid, position)
);`

// Migrate creates the order tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
