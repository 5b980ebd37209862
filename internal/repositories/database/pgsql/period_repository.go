package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal years and
// accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

// GetOrCreateFiscalYear inserts the year if absent and fetches it either way.
// ON CONFLICT DO NOTHING plus the follow-up select makes concurrent creation
// converge on the same row.
func (r *PgxPeriodRepository) GetOrCreateFiscalYear(ctx context.Context, companyID string, year int, createdBy string) (*domain.FiscalYear, error) {
	now := time.Now().UTC()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	insertQuery := `
		INSERT INTO fiscal_years (fiscal_year_id, company_id, year, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, year) DO NOTHING;`

	_, err := r.Pool.Exec(ctx, insertQuery,
		uuid.NewString(), companyID, year, start, end, now, createdBy, now, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fiscal year %d: %w", year, err)
	}

	selectQuery := `
		SELECT fiscal_year_id, company_id, year, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_years
		WHERE company_id = $1 AND year = $2;`

	var fy domain.FiscalYear
	err = r.Pool.QueryRow(ctx, selectQuery, companyID, year).Scan(
		&fy.FiscalYearID,
		&fy.CompanyID,
		&fy.Year,
		&fy.StartDate,
		&fy.EndDate,
		&fy.CreatedAt,
		&fy.CreatedBy,
		&fy.LastUpdatedAt,
		&fy.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fiscal year %d: %w", year, err)
	}
	return &fy, nil
}

// GetOrCreatePeriod inserts the month if absent and fetches it either way,
// mirroring GetOrCreateFiscalYear.
func (r *PgxPeriodRepository) GetOrCreatePeriod(ctx context.Context, companyID, fiscalYearID string, year, month int, createdBy string) (*domain.AccountingPeriod, error) {
	now := time.Now().UTC()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	insertQuery := `
		INSERT INTO accounting_periods (period_id, company_id, fiscal_year_id, year, month,
			start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, year, month) DO NOTHING;`

	_, err := r.Pool.Exec(ctx, insertQuery,
		uuid.NewString(), companyID, fiscalYearID, year, month, start, end, now, createdBy, now, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to insert accounting period %d-%02d: %w", year, month, err)
	}

	selectQuery := `
		SELECT period_id, company_id, fiscal_year_id, year, month, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_periods
		WHERE company_id = $1 AND year = $2 AND month = $3;`

	var period domain.AccountingPeriod
	err = r.Pool.QueryRow(ctx, selectQuery, companyID, year, month).Scan(
		&period.PeriodID,
		&period.CompanyID,
		&period.FiscalYearID,
		&period.Year,
		&period.Month,
		&period.StartDate,
		&period.EndDate,
		&period.CreatedAt,
		&period.CreatedBy,
		&period.LastUpdatedAt,
		&period.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounting period %d-%02d: %w", year, month, err)
	}
	return &period, nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `
		SELECT period_id, company_id, fiscal_year_id, year, month, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_periods
		WHERE period_id = $1;`

	var period domain.AccountingPeriod
	err := r.Pool.QueryRow(ctx, query, periodID).Scan(
		&period.PeriodID,
		&period.CompanyID,
		&period.FiscalYearID,
		&period.Year,
		&period.Month,
		&period.StartDate,
		&period.EndDate,
		&period.CreatedAt,
		&period.CreatedBy,
		&period.LastUpdatedAt,
		&period.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by id %s: %w", periodID, err)
	}
	return &period, nil
}
