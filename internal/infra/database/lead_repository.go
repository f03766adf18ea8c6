package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/leadfocus/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, user_id, name, company, industry, company_size,
	email, phone, linkedin_url, buying_signals,
	last_buying_signal_at, last_researched_at, created_at, updated_at
`

func (r *LeadRepository) FindByIDForUser(ctx context.Context, leadID, userID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND user_id = $2`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, leadID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("finding lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) ListResearchedByUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE user_id = $1 AND last_researched_at IS NOT NULL
		ORDER BY last_researched_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing researched leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var company, industry, companySize, email, phone, linkedin sql.NullString
	var lastSignal, lastResearched sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.UserID,
		&lead.Name,
		&company,
		&industry,
		&companySize,
		&email,
		&phone,
		&linkedin,
		&lead.BuyingSignals,
		&lastSignal,
		&lastResearched,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Company = company.String
	lead.Industry = industry.String
	lead.CompanySize = companySize.String
	lead.Email = email.String
	lead.Phone = phone.String
	lead.LinkedInURL = linkedin.String
	if lastSignal.Valid {
		t := lastSignal.Time
		lead.LastBuyingSignalAt = &t
	}
	if lastResearched.Valid {
		t := lastResearched.Time
		lead.LastResearchedAt = &t
	}
	return &lead, nil
}
