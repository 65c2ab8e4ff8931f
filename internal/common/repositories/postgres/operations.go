package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/pkg/errs"
)

type operationsRepository struct {
	psql *pgxpool.Pool
}

func NewOperationsRepository(pool *pgxpool.Pool) domain.OperationsRepository {
	return &operationsRepository{
		psql: pool,
	}
}

func (or *operationsRepository) SaveOperation(ctx context.Context, operation *domain.Operation) error {
	query := `INSERT INTO stock_trader.operations(
			id,
			user_id,
			type,
			symbol,
			count,
			price,
			total_amount,
			created_at
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6::numeric, $7::numeric, $8)`
	_, err := or.psql.Exec(ctx,
		query,
		operation.ID.String(),
		operation.UserID,
		operation.Type,
		operation.Symbol,
		operation.Count,
		operation.Price.String(),
		operation.TotalAmount.String(),
		operation.CreatedAt,
	)
	if err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (or *operationsRepository) GetOperationsPagesCount(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_trader.operations WHERE user_id = $1`
	var operationsCount int64
	if err := or.psql.QueryRow(ctx, query, userID).Scan(&operationsCount); err != nil {
		return 0, errs.NewStack(err)
	}

	return domain.PagesCount(operationsCount, domain.OperationsPerPage), nil
}

func (or *operationsRepository) GetOperationsByPage(ctx context.Context, userID, page int64) ([]*domain.Operation, error) {
	if page < 1 {
		page = 1
	}

	query := `SELECT id::text,
			user_id,
			type,
			symbol,
			count,
			price::text,
			total_amount::text,
			created_at
		FROM stock_trader.operations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := or.psql.Query(ctx, query, userID, domain.OperationsPerPage, (page-1)*domain.OperationsPerPage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*domain.Operation{}, nil
		}

		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	operations := []*domain.Operation{}
	for rows.Next() {
		operation := &Operation{}
		if err := rows.Scan(
			&operation.ID,
			&operation.UserID,
			&operation.Type,
			&operation.Symbol,
			&operation.Count,
			&operation.Price,
			&operation.TotalAmount,
			&operation.CreatedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		op, err := operation.CreateDomain()
		if err != nil {
			return nil, errs.NewStack(err)
		}
		operations = append(operations, op)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return operations, nil
}
