package export

import (
	"context"
	"database/sql"
	"fmt"

	"go-dernek/internal/features/debt"
	"go-dernek/internal/features/payment"

	_ "github.com/lib/pq"
)

// pgSink upserts snapshots into the reporting database. Rows are keyed
// by the Mongo id, so re-running an export is idempotent.
type pgSink struct {
	connStr string
}

func newPgSink(connStr string) *pgSink {
	return &pgSink{connStr: connStr}
}

func (p *pgSink) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", p.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

func (p *pgSink) upsertDebts(ctx context.Context, db *sql.DB, debts []debt.Debt) (int, error) {
	const query = `INSERT INTO borclar (id, uye_id, borc_tutari, kalan, odendi, yil, ay, aciklama)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			borc_tutari = $3, kalan = $4, odendi = $5, yil = $6, ay = $7, aciklama = $8`

	count := 0
	for _, d := range debts {
		_, err := db.ExecContext(ctx, query,
			d.ID.Hex(), d.MemberID.Hex(), d.Amount, d.Remaining, d.Paid, d.Year, d.Month, d.Description)
		if err != nil {
			return count, fmt.Errorf("failed to upsert debt %s: %w", d.ID.Hex(), err)
		}
		count++
	}
	return count, nil
}

func (p *pgSink) upsertPayments(ctx context.Context, db *sql.DB, payments []payment.Payment) (int, error) {
	const query = `INSERT INTO odemeler (id, borc_id, uye_id, kasa_id, odeme_tutari, odeme_turu, odeme_tarihi)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			odeme_tutari = $5, odeme_turu = $6, odeme_tarihi = $7`

	count := 0
	for _, pay := range payments {
		_, err := db.ExecContext(ctx, query,
			pay.ID.Hex(), pay.DebtID.Hex(), pay.MemberID.Hex(), pay.RegisterID.Hex(),
			pay.Amount, string(pay.Method), pay.PaidAt)
		if err != nil {
			return count, fmt.Errorf("failed to upsert payment %s: %w", pay.ID.Hex(), err)
		}
		count++
	}
	return count, nil
}
