// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanchalalytcs/showcase/internal/platform/database/schema"
	"github.com/aanchalalytcs/showcase/internal/platform/dberr"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(ctx context.Context, entry Entry) error {
	table := schema.ModerationAudit
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		table.Table,
		table.ID, table.Dataset, table.Action, table.EntityID,
		table.Outcome, table.Message, table.SessionID, table.CreatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		entry.ID, entry.Dataset, entry.Action, entry.EntityID,
		entry.Outcome, entry.Message, entry.SessionID, entry.CreatedAt,
	)
	return dberr.Wrap(err, "insert_audit_entry")
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, int, error) {
	table := schema.ModerationAudit

	var (
		conditions []string
		args       []any
	)
	if filter.Dataset != "" {
		args = append(args, filter.Dataset)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.Dataset, len(args)))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.EntityID, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, table.Table, where)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_audit_entries")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		%s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d
	`,
		table.ID, table.Dataset, table.Action, table.EntityID,
		table.Outcome, table.Message, table.SessionID, table.CreatedAt,
		table.Table,
		where,
		table.CreatedAt, table.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.db.Query(ctx, listQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	entries := make([]Entry, 0, page.Limit)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID, &entry.Dataset, &entry.Action, &entry.EntityID,
			&entry.Outcome, &entry.Message, &entry.SessionID, &entry.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_audit_entries")
	}

	return entries, total, nil
}
