package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// SaveOrder: upsert order + delivery + payment, replace items. One tx, so a
// redelivered message leaves exactly one copy of the order.
func (r *Repo) SaveOrder(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `
		INSERT INTO orders(order_uid, track_number, entry, locale, internal_signature,
			customer_id, delivery_service, shardkey, sm_id, date_created, oof_shard)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (order_uid) DO UPDATE SET
			track_number=EXCLUDED.track_number, entry=EXCLUDED.entry, locale=EXCLUDED.locale,
			internal_signature=EXCLUDED.internal_signature, customer_id=EXCLUDED.customer_id,
			delivery_service=EXCLUDED.delivery_service, shardkey=EXCLUDED.shardkey,
			sm_id=EXCLUDED.sm_id, date_created=EXCLUDED.date_created, oof_shard=EXCLUDED.oof_shard`,
		o.OrderUID, o.TrackNumber, o.Entry, o.Locale, o.InternalSignature,
		o.CustomerID, o.DeliveryService, o.Shardkey, o.SmID, o.DateCreated, o.OofShard,
	); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	d := o.Delivery
	if _, err = tx.Exec(ctx, `
		INSERT INTO deliveries(order_uid, name, phone, zip, city, address, region, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (order_uid) DO UPDATE SET
			name=EXCLUDED.name, phone=EXCLUDED.phone, zip=EXCLUDED.zip, city=EXCLUDED.city,
			address=EXCLUDED.address, region=EXCLUDED.region, email=EXCLUDED.email`,
		o.OrderUID, d.Name, d.Phone, d.Zip, d.City, d.Address, d.Region, d.Email,
	); err != nil {
		return fmt.Errorf("upsert delivery: %w", err)
	}

	p := o.Payment
	if _, err = tx.Exec(ctx, `
		INSERT INTO payments(order_uid, transaction, request_id, currency, provider,
			amount, payment_dt, bank, delivery_cost, goods_total, custom_fee)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (order_uid) DO UPDATE SET
			transaction=EXCLUDED.transaction, request_id=EXCLUDED.request_id,
			currency=EXCLUDED.currency, provider=EXCLUDED.provider, amount=EXCLUDED.amount,
			payment_dt=EXCLUDED.payment_dt, bank=EXCLUDED.bank,
			delivery_cost=EXCLUDED.delivery_cost, goods_total=EXCLUDED.goods_total,
			custom_fee=EXCLUDED.custom_fee`,
		o.OrderUID, p.Transaction, p.RequestID, p.Currency, p.Provider,
		p.Amount, p.PaymentDt, p.Bank, p.DeliveryCost, p.GoodsTotal, p.CustomFee,
	); err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM items WHERE order_uid=$1`, o.OrderUID); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	// position keeps the producer's item order on read
	for i, it := range o.Items {
		if _, err = tx.Exec(ctx, `
			INSERT INTO items(order_uid, position, chrt_id, track_number, price, rid, name,
				sale, size, total_price, nm_id, brand, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			o.OrderUID, i, it.ChrtID, it.TrackNumber, it.Price, it.Rid, it.Name,
			it.Sale, it.Size, it.TotalPrice, it.NmID, it.Brand, it.Status,
		); err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) GetOrder(ctx context.Context, orderUID string) (*Order, error) {
	var o Order
	var created time.Time
	err := r.DB.QueryRow(ctx, `
		SELECT o.order_uid, o.track_number, o.entry, o.locale, o.internal_signature,
			o.customer_id, o.delivery_service, o.shardkey, o.sm_id, o.date_created, o.oof_shard,
			d.name, d.phone, d.zip, d.city, d.address, d.region, d.email,
			p.transaction, p.request_id, p.currency, p.provider, p.amount, p.payment_dt,
			p.bank, p.delivery_cost, p.goods_total, p.custom_fee
		FROM orders o
		JOIN deliveries d ON d.order_uid = o.order_uid
		JOIN payments p ON p.order_uid = o.order_uid
		WHERE o.order_uid=$1`, orderUID).Scan(
		&o.OrderUID, &o.TrackNumber, &o.Entry, &o.Locale, &o.InternalSignature,
		&o.CustomerID, &o.DeliveryService, &o.Shardkey, &o.SmID, &created, &o.OofShard,
		&o.Delivery.Name, &o.Delivery.Phone, &o.Delivery.Zip, &o.Delivery.City,
		&o.Delivery.Address, &o.Delivery.Region, &o.Delivery.Email,
		&o.Payment.Transaction, &o.Payment.RequestID, &o.Payment.Currency, &o.Payment.Provider,
		&o.Payment.Amount, &o.Payment.PaymentDt, &o.Payment.Bank, &o.Payment.DeliveryCost,
		&o.Payment.GoodsTotal, &o.Payment.CustomFee,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderUID, err)
	}
	o.DateCreated = created.UTC()

	rows, err := r.DB.Query(ctx, `
		SELECT chrt_id, track_number, price, rid, name, sale, size, total_price, nm_id, brand, status
		FROM items WHERE order_uid=$1 ORDER BY position`, orderUID)
	if err != nil {
		return nil, fmt.Errorf("get items %s: %w", orderUID, err)
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ChrtID, &it.TrackNumber, &it.Price, &it.Rid, &it.Name, &it.Sale,
			&it.Size, &it.TotalPrice, &it.NmID, &it.Brand, &it.Status); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) ListOrderUIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT order_uid FROM orders ORDER BY date_created`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// LoadAll returns every stored order. An order that fails to load is skipped
// and reported through skip so one bad row does not block cache warm-up.
func (r *Repo) LoadAll(ctx context.Context, skip func(uid string, err error)) ([]*Order, error) {
	uids, err := r.ListOrderUIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Order, 0, len(uids))
	for _, uid := range uids {
		o, err := r.GetOrder(ctx, uid)
		if err != nil {
			if skip != nil {
				skip(uid, err)
			}
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
