package database

import (
	"context"
	"fmt"
	"time"

	"go-vagas-automation/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Hosted poolers (PgBouncer in transaction mode) choke on prepared
	// statements, so the statement cache must stay off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the listings table on first run.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS vagas (
			id BIGSERIAL PRIMARY KEY,
			titulo TEXT NOT NULL,
			empresa TEXT,
			tipo_vaga TEXT NOT NULL,
			fonte TEXT NOT NULL,
			link_vaga TEXT,
			modalidade TEXT NOT NULL,
			forma_contato TEXT NOT NULL,
			email_contato TEXT,
			perfil_autor TEXT,
			data_coleta TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Exists reports whether an equivalent listing was already stored: same
// title and company, or the same application link. This is the cross-run
// counterpart of the in-session ledger.
func (r *Repository) Exists(ctx context.Context, rec models.JobRecord) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM vagas
			WHERE (titulo = $1 AND empresa = $2)
			   OR ($3 <> '' AND link_vaga = $3)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, rec.Title, rec.Company, rec.ApplyLink).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate listing: %w", err)
	}
	return exists, nil
}

// SaveRecord inserts one listing.
func (r *Repository) SaveRecord(ctx context.Context, rec models.JobRecord) error {
	query := `
		INSERT INTO vagas (titulo, empresa, tipo_vaga, fonte, link_vaga, modalidade, forma_contato, email_contato, perfil_autor, data_coleta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		rec.Title, rec.Company, rec.Category, rec.Source, rec.ApplyLink,
		rec.Modality, rec.Channel, rec.Email, rec.AuthorProfile, rec.CollectedAt)
	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// SaveAll inserts every record that is not already stored and returns
// how many were new. A failed insert aborts; a duplicate just skips.
func (r *Repository) SaveAll(ctx context.Context, recs []models.JobRecord) (int, error) {
	saved := 0
	for _, rec := range recs {
		dup, err := r.Exists(ctx, rec)
		if err != nil {
			return saved, err
		}
		if dup {
			continue
		}
		if err := r.SaveRecord(ctx, rec); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// Stats summarizes the stored listings.
type Stats struct {
	Total      int64
	Last24h    int64
	BySource   map[models.Source]int64
	ByCategory map[string]int64
}

func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		BySource:   make(map[models.Source]int64),
		ByCategory: make(map[string]int64),
	}

	err := r.db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE data_coleta > now() - interval '24 hours') FROM vagas`).
		Scan(&stats.Total, &stats.Last24h)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT fonte, count(*) FROM vagas GROUP BY fonte`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by source: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var src models.Source
		var n int64
		if err := rows.Scan(&src, &n); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		stats.BySource[src] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `SELECT tipo_vaga, count(*) FROM vagas GROUP BY tipo_vaga`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int64
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ByCategory[cat] = n
	}
	return stats, rows.Err()
}
