package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/f1040-filler/internal/domain"
)

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Schema migrations are managed by dbmate;
// run `dbmate up` before starting the server.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// ── Runs ──────────────────────────────────────────────────────────────────────

func (r *Repository) CreateRun(ctx context.Context, run *domain.Run) error {
	run.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, form, tax_year, config_file, output_file,
			status, error, fields_written, errors_recorded,
			created_at, completed_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Form, run.TaxYear, run.ConfigFile, run.OutputFile,
		string(run.Status), run.Error, run.FieldsWritten, run.ErrorsRecorded,
		run.CreatedAt, nullTime(run.CompletedAt),
	)
	return err
}

func (r *Repository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	run := &domain.Run{}
	var status string
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, form, tax_year, config_file, output_file,
		       status, error, fields_written, errors_recorded,
		       created_at, completed_at
		FROM runs WHERE id=?`, id).Scan(
		&run.ID, &run.Form, &run.TaxYear, &run.ConfigFile, &run.OutputFile,
		&status, &run.Error, &run.FieldsWritten, &run.ErrorsRecorded,
		&run.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

func (r *Repository) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, form, tax_year, config_file, output_file,
		       status, error, fields_written, errors_recorded,
		       created_at, completed_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Run
	for rows.Next() {
		var run domain.Run
		var status string
		var completedAt sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Form, &run.TaxYear, &run.ConfigFile, &run.OutputFile,
			&status, &run.Error, &run.FieldsWritten, &run.ErrorsRecorded,
			&run.CreatedAt, &completedAt,
		); err != nil {
			return nil, err
		}
		run.Status = domain.RunStatus(status)
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		list = append(list, run)
	}
	return list, rows.Err()
}

func (r *Repository) UpdateRun(ctx context.Context, run *domain.Run) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE runs
		SET form=?, tax_year=?, config_file=?, output_file=?,
		    status=?, error=?, fields_written=?, errors_recorded=?,
		    completed_at=?
		WHERE id=?`,
		run.Form, run.TaxYear, run.ConfigFile, run.OutputFile,
		string(run.Status), run.Error, run.FieldsWritten, run.ErrorsRecorded,
		nullTime(run.CompletedAt), run.ID,
	)
	return err
}

func (r *Repository) DeleteRun(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, id)
	return err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
