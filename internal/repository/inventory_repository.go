package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"copartinv/internal/model"
)

const Schema = `
CREATE TABLE IF NOT EXISTS copart_inventory (
	lot_number   TEXT PRIMARY KEY,
	year         TEXT NOT NULL,
	make         TEXT NOT NULL,
	model        TEXT NOT NULL,
	category     TEXT NOT NULL,
	damage_type  TEXT NOT NULL,
	vehicle_yard TEXT NOT NULL,
	auction_date TEXT NOT NULL,
	current_bid  NUMERIC(14,2),
	fipe_value   NUMERIC(14,2),
	url_detalhe  TEXT NOT NULL,
	sync_run_id  UUID NOT NULL
);

CREATE TABLE IF NOT EXISTS copart_sync_logs (
	id         UUID PRIMARY KEY,
	status     TEXT NOT NULL,
	total      INTEGER NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

const (
	SyncSuccess = "success"
	SyncError   = "error"
)

// DB é o subconjunto do pgxpool usado pelo repositório (pgxmock nos testes).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type SyncLog struct {
	RunID     uuid.UUID
	Status    string
	Total     int
	Message   string
	CreatedAt time.Time
}

// InventoryRepository mantém no Postgres uma cópia do último inventário gerado.
type InventoryRepository struct {
	DB  DB
	Now func() time.Time
}

func (r *InventoryRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *InventoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Replace substitui todo o conteúdo da tabela em uma única transação e
// registra o resultado em copart_sync_logs.
func (r *InventoryRepository) Replace(ctx context.Context, runID uuid.UUID, items []model.InventoryItem) error {
	if err := r.replace(ctx, runID, items); err != nil {
		logErr := r.LogSync(ctx, SyncLog{
			RunID:   runID,
			Status:  SyncError,
			Total:   len(items),
			Message: err.Error(),
		})
		if logErr != nil {
			log.Printf("Erro ao registrar falha da sincronização %s: %v", runID, logErr)
		}
		return err
	}
	return nil
}

func (r *InventoryRepository) replace(ctx context.Context, runID uuid.UUID, items []model.InventoryItem) (err error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao desfazer transação: %v", rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM copart_inventory`); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO copart_inventory
			(lot_number, year, make, model, category, damage_type, vehicle_yard, auction_date, current_bid, fipe_value, url_detalhe, sync_run_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (lot_number) DO UPDATE SET
				year = EXCLUDED.year, make = EXCLUDED.make, model = EXCLUDED.model,
				category = EXCLUDED.category, damage_type = EXCLUDED.damage_type,
				vehicle_yard = EXCLUDED.vehicle_yard, auction_date = EXCLUDED.auction_date,
				current_bid = EXCLUDED.current_bid, fipe_value = EXCLUDED.fipe_value,
				url_detalhe = EXCLUDED.url_detalhe, sync_run_id = EXCLUDED.sync_run_id
		`, it.LotNumber, it.Year, it.Make, it.Model, it.Category, it.DamageType, it.VehicleYard,
			it.AuctionDate, Money(it.CurrentBid), Money(it.FipeValue), it.URLDetalhe, runID)
		if err != nil {
			return fmt.Errorf("failed to insert lot %s: %w", it.LotNumber, err)
		}
	}

	if err = r.logSync(ctx, tx, SyncLog{RunID: runID, Status: SyncSuccess, Total: len(items)}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LogSync grava uma entrada no histórico de sincronizações.
func (r *InventoryRepository) LogSync(ctx context.Context, entry SyncLog) error {
	return r.logSync(ctx, r.DB, entry)
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *InventoryRepository) logSync(ctx context.Context, ex execer, entry SyncLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	_, err := ex.Exec(ctx, `
		INSERT INTO copart_sync_logs (id, status, total, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.RunID, entry.Status, entry.Total, entry.Message, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write sync log: %w", err)
	}
	return nil
}

// Money converte o valor textual do artefato em NUMERIC; valores que não são
// decimais viram NULL.
func Money(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
