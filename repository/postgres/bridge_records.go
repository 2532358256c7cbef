package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/db"
	"github.com/omni/bridge-orchestrator/entity"
)

type bridgeRecordsRepo basePostgresRepo

func NewBridgeRecordsRepo(table string, db *db.DB) entity.BridgeRecordsRepo {
	return (*bridgeRecordsRepo)(newBasePostgresRepo(table, db))
}

func (r *bridgeRecordsRepo) Create(ctx context.Context, record *entity.BridgeRecord) error {
	q, args, err := sq.Insert(r.table).
		Columns("from_address", "to_address", "from_chain_id", "to_chain_id", "from_amount",
			"from_token_address", "to_token_address", "steps", "status", "raw_route").
		Values(record.FromAddress, record.ToAddress, record.FromChainID, record.ToChainID, record.FromAmount,
			record.FromTokenAddress, record.ToTokenAddress, record.Steps, record.Status, record.RawRoute).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("can't build query: %w", err)
	}
	err = r.db.GetContext(ctx, &record.ID, q, args...)
	if err != nil {
		return fmt.Errorf("can't insert bridge record: %w", err)
	}
	return nil
}

// Update replaces the mutable part of the record. The status predicate makes
// the merge monotone: once a record left PENDING, only updates carrying the
// same terminal status still apply, so a late or duplicate progress snapshot
// can't move the record backwards.
func (r *bridgeRecordsRepo) Update(ctx context.Context, record *entity.BridgeRecord) error {
	q, args, err := sq.Update(r.table).
		Set("steps", record.Steps).
		Set("status", record.Status).
		Set("raw_route", record.RawRoute).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": record.ID}).
		Where(sq.Or{
			sq.Eq{"status": entity.StatusPending},
			sq.Eq{"status": record.Status},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("can't build query: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("can't update bridge record: %w", err)
	}
	return nil
}

func (r *bridgeRecordsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.BridgeRecord, error) {
	q, args, err := sq.Select("*").
		From(r.table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("can't build query: %w", err)
	}
	record := new(entity.BridgeRecord)
	err = r.db.GetContext(ctx, record, q, args...)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("can't get bridge record: %w", err)
	}
	return record, nil
}
