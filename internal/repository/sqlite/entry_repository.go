package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

const entryColumns = `id, user_id, description, month, year, amount, type, status, registered_at`

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO entries (user_id, description, month, year, amount, type, status, registered_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.Description,
		nullInt(entry.Month),
		nullInt(entry.Year),
		nullDecimal(entry.Amount),
		string(entry.Type),
		string(entry.Status),
		nullTime(entry.RegisteredAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("entry last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO entries (id, user_id, description, month, year, amount, type, status, registered_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	user_id=excluded.user_id,
	description=excluded.description,
	month=excluded.month,
	year=excluded.year,
	amount=excluded.amount,
	type=excluded.type,
	status=excluded.status,
	registered_at=excluded.registered_at`,
		entry.ID,
		entry.UserID,
		entry.Description,
		nullInt(entry.Month),
		nullInt(entry.Year),
		nullDecimal(entry.Amount),
		string(entry.Type),
		string(entry.Status),
		nullTime(entry.RegisteredAt),
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("entry delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE id=?`,
		id,
	)
	return scanEntry(row)
}

func (r *EntryRepository) FindByExample(ctx context.Context, template domain.Entry) ([]domain.Entry, error) {
	var (
		clauses []string
		args    []any
	)
	if template.ID != 0 {
		clauses = append(clauses, "id = ?")
		args = append(args, template.ID)
	}
	if template.UserID != 0 {
		clauses = append(clauses, "user_id = ?")
		args = append(args, template.UserID)
	}
	if template.Description != "" {
		clauses = append(clauses, `LOWER(description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(template.Description))+"%")
	}
	if template.Month != nil {
		clauses = append(clauses, "month = ?")
		args = append(args, *template.Month)
	}
	if template.Year != nil {
		clauses = append(clauses, "year = ?")
		args = append(args, *template.Year)
	}
	if template.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(template.Type))
	}
	if template.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(template.Status))
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY year, month, id`

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// amounts are stored as text, so equality is decided numerically here
	if template.Amount == nil && template.RegisteredAt == nil {
		return entries, nil
	}
	matched := entries[:0]
	for _, entry := range entries {
		if template.Amount != nil && (entry.Amount == nil || !entry.Amount.Equal(*template.Amount)) {
			continue
		}
		if template.RegisteredAt != nil && (entry.RegisteredAt == nil || !entry.RegisteredAt.Equal(*template.RegisteredAt)) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error) {
	return r.queryEntries(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE user_id=?
ORDER BY year, month, id`,
		userID,
	)
}

func (r *EntryRepository) SumByTypeAndUser(ctx context.Context, userID int64, typ domain.EntryType) (decimal.NullDecimal, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT amount
FROM entries
WHERE user_id=? AND type=?`,
		userID,
		string(typ),
	)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("query entry amounts: %w", err)
	}
	defer rows.Close()

	// SQLite SUM over text goes through floating point, so the sum is done here
	var (
		sum   decimal.Decimal
		found bool
	)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.NullDecimal{}, fmt.Errorf("scan entry amount: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.NullDecimal{}, fmt.Errorf("parse entry amount %q: %w", raw, err)
		}
		sum = sum.Add(amount)
		found = true
	}
	if err := rows.Err(); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("iterate entry amounts: %w", err)
	}

	return decimal.NullDecimal{Decimal: sum, Valid: found}, nil
}

func (r *EntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

func scanEntry(scanner interface {
	Scan(dest ...any) error
}) (*domain.Entry, error) {
	var (
		entry        domain.Entry
		month        int
		year         int
		amount       string
		typ          string
		status       string
		registeredAt sql.NullTime
	)

	if err := scanner.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Description,
		&month,
		&year,
		&amount,
		&typ,
		&status,
		&registeredAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse entry amount %q: %w", amount, err)
	}

	entry.Month = &month
	entry.Year = &year
	entry.Amount = &value
	entry.Type = domain.EntryType(typ)
	entry.Status = domain.EntryStatus(status)
	if registeredAt.Valid {
		t := registeredAt.Time.UTC()
		entry.RegisteredAt = &t
	}

	return &entry, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
