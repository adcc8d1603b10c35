// Package sqlite persists client profiles and allocation results in a
// local SQLite database. Result writes run in a transaction with an
// optimistic version check so concurrent batch runs for the same
// client cannot interleave.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nestegg/internal/core"
	"nestegg/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ store.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, clientID string) (core.ClientProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, filing_status, employment,
		       gross_income_cents, net_profit_cents, monthly_savings_cents, savings_rate,
		       score_retirement, score_education, score_health,
		       hsa_eligible, dependents, has_pretax_ira,
		       employer_offered, employer_match_text, employer_deferral_cents,
		       tax_preference, archetype, version
		FROM clients WHERE id = ?`, clientID)

	var p core.ClientProfile
	var hsaEligible, hasPretaxIRA, employerOffered int
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Filing, &p.Employment,
		&p.GrossIncome.Cents, &p.NetProfit.Cents, &p.MonthlySavings.Cents, &p.SavingsRate,
		&p.Scores.Retirement, &p.Scores.Education, &p.Scores.Health,
		&hsaEligible, &p.Dependents, &hasPretaxIRA,
		&employerOffered, &p.Employer.MatchText, &p.Employer.CurrentDeferral.Cents,
		&p.TaxPref, &p.ArchetypeID, &p.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ClientProfile{}, store.ErrNotFound
	}
	if err != nil {
		return core.ClientProfile{}, fmt.Errorf("get profile: %w", err)
	}
	p.HSAEligible = hsaEligible != 0
	p.HasPretaxIRA = hasPretaxIRA != 0
	p.Employer.Offered = employerOffered != 0
	return p, nil
}

func (r *Repository) SaveProfile(ctx context.Context, p core.ClientProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (
			id, name, age, filing_status, employment,
			gross_income_cents, net_profit_cents, monthly_savings_cents, savings_rate,
			score_retirement, score_education, score_health,
			hsa_eligible, dependents, has_pretax_ira,
			employer_offered, employer_match_text, employer_deferral_cents,
			tax_preference, archetype, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			filing_status = excluded.filing_status,
			employment = excluded.employment,
			gross_income_cents = excluded.gross_income_cents,
			net_profit_cents = excluded.net_profit_cents,
			monthly_savings_cents = excluded.monthly_savings_cents,
			savings_rate = excluded.savings_rate,
			score_retirement = excluded.score_retirement,
			score_education = excluded.score_education,
			score_health = excluded.score_health,
			hsa_eligible = excluded.hsa_eligible,
			dependents = excluded.dependents,
			has_pretax_ira = excluded.has_pretax_ira,
			employer_offered = excluded.employer_offered,
			employer_match_text = excluded.employer_match_text,
			employer_deferral_cents = excluded.employer_deferral_cents,
			tax_preference = excluded.tax_preference,
			archetype = excluded.archetype,
			version = clients.version + 1,
			updated_at = CURRENT_TIMESTAMP`,
		p.ID, p.Name, p.Age, string(p.Filing), string(p.Employment),
		p.GrossIncome.Cents, p.NetProfit.Cents, p.MonthlySavings.Cents, p.SavingsRate,
		p.Scores.Retirement, p.Scores.Education, p.Scores.Health,
		boolInt(p.HSAEligible), p.Dependents, boolInt(p.HasPretaxIRA),
		boolInt(p.Employer.Offered), p.Employer.MatchText, p.Employer.CurrentDeferral.Cents,
		string(p.TaxPref), string(p.ArchetypeID))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// WriteResult replaces the client's allocation rows atomically. The
// version check inside the transaction is the per-record mutual
// exclusion: a profile updated mid-run fails the write with
// ErrConflict and the caller re-runs against the fresh profile.
func (r *Repository) WriteResult(ctx context.Context, res core.AllocationResult, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM clients WHERE id = ?`, res.ClientID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if version != expectedVersion {
		return fmt.Errorf("%w: client %s version %d, expected %d",
			store.ErrConflict, res.ClientID, version, expectedVersion)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM allocations WHERE client_id = ?`, res.ClientID); err != nil {
		return fmt.Errorf("clear allocations: %w", err)
	}

	insert := `INSERT INTO allocations (client_id, domain, vehicle, actual_cents, ideal_cents) VALUES (?, ?, ?, ?, ?)`
	// Every catalog vehicle is written, zero-filled when the run did
	// not produce it, so downstream consumers can rely on row presence.
	for _, e := range core.Catalog {
		a := res.Get(e.Domain, e.Name)
		if _, err := tx.ExecContext(ctx, insert, res.ClientID, string(e.Domain), e.Name, a.Actual.Cents, a.Ideal.Cents); err != nil {
			return fmt.Errorf("insert allocation: %w", err)
		}
	}
	bank := res.Get(core.DomainBank, core.VehicleFamilyBank)
	if _, err := tx.ExecContext(ctx, insert, res.ClientID, string(core.DomainBank), core.VehicleFamilyBank, 0, bank.Ideal.Cents); err != nil {
		return fmt.Errorf("insert sink allocation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE clients SET allocated_version = ? WHERE id = ?`, expectedVersion, res.ClientID); err != nil {
		return fmt.Errorf("mark allocated: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "allocation result saved",
		"client_id", res.ClientID, "version", expectedVersion)
	return nil
}

func (r *Repository) ReadResult(ctx context.Context, clientID string) (core.AllocationResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT domain, vehicle, actual_cents, ideal_cents
		FROM allocations WHERE client_id = ?`, clientID)
	if err != nil {
		return core.AllocationResult{}, fmt.Errorf("read result: %w", err)
	}
	defer rows.Close()

	res := core.NewResult(clientID)
	found := false
	for rows.Next() {
		var domain, vehicle string
		var actual, ideal int64
		if err := rows.Scan(&domain, &vehicle, &actual, &ideal); err != nil {
			return core.AllocationResult{}, fmt.Errorf("scan allocation: %w", err)
		}
		res.Set(core.Domain(domain), vehicle, core.Allocation{
			Actual: core.Money{Cents: actual},
			Ideal:  core.Money{Cents: ideal},
		})
		found = true
	}
	if err := rows.Err(); err != nil {
		return core.AllocationResult{}, fmt.Errorf("iterate allocations: %w", err)
	}
	if !found {
		return core.AllocationResult{}, store.ErrNotFound
	}
	return res, nil
}

func (r *Repository) ListStale(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM clients
		WHERE allocated_version < version
		ORDER BY updated_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale clients: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
