package catalogrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	"github.com/yanqian/funzone-site/internal/domain/hours"
)

// PostgresRepository implements catalog.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Branches returns every branch in display order.
func (r *PostgresRepository) Branches(ctx context.Context) ([]catalog.Branch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, city, branch_type, short_description, age_range,
		       hours, phone, whatsapp, address_text, lat, lng,
		       activities, gallery, has_birthdays, tags
		FROM branches
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Branch
	for rows.Next() {
		var (
			b         catalog.Branch
			hoursJSON []byte
		)
		if err := rows.Scan(
			&b.ID, &b.Slug, &b.Name, &b.City, &b.Type, &b.ShortDescription, &b.AgeRange,
			&hoursJSON, &b.Phone, &b.WhatsApp, &b.AddressText, &b.Coordinates.Lat, &b.Coordinates.Lng,
			&b.Activities, &b.Gallery, &b.HasBirthdays, &b.Tags,
		); err != nil {
			return nil, err
		}
		b.Hours = decodeHours(hoursJSON)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Activities returns every activity in display order.
func (r *PostgresRepository) Activities(ctx context.Context) ([]catalog.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, icon_name, description, age_min, age_max,
		       energy_level, available_at
		FROM activities
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Activity
	for rows.Next() {
		var a catalog.Activity
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Category, &a.IconName, &a.Description, &a.AgeRange.Min, &a.AgeRange.Max,
			&a.EnergyLevel, &a.AvailableAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Neighborhoods returns every curated neighborhood.
func (r *PostgresRepository) Neighborhoods(ctx context.Context) ([]catalog.Neighborhood, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, cities, COALESCE(branch_type, '')
		FROM neighborhoods
		ORDER BY position, title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Neighborhood
	for rows.Next() {
		var n catalog.Neighborhood
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Cities, &n.Type); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Programs returns every program in display order.
func (r *PostgresRepository) Programs(ctx context.Context) ([]catalog.Program, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT slug, content
		FROM programs
		ORDER BY position, slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Program
	for rows.Next() {
		var (
			slug    string
			content []byte
		)
		if err := rows.Scan(&slug, &content); err != nil {
			return nil, err
		}
		var p catalog.Program
		if err := json.Unmarshal(content, &p); err != nil {
			return nil, fmt.Errorf("program %s: %w", slug, err)
		}
		p.Slug = slug
		out = append(out, p)
	}
	return out, rows.Err()
}

// defaultBirthdayKey marks the fallback row of birthday_content.
const defaultBirthdayKey = "*"

// Birthdays returns the per-branch birthday pages and the fallback page.
func (r *PostgresRepository) Birthdays(ctx context.Context) (catalog.BirthdayCatalog, error) {
	rows, err := r.pool.Query(ctx, `SELECT branch_slug, content FROM birthday_content`)
	if err != nil {
		return catalog.BirthdayCatalog{}, err
	}
	defer rows.Close()

	out := catalog.BirthdayCatalog{Branches: map[string]catalog.BirthdayContent{}}
	for rows.Next() {
		var (
			slug    string
			raw     []byte
			content catalog.BirthdayContent
		)
		if err := rows.Scan(&slug, &raw); err != nil {
			return catalog.BirthdayCatalog{}, err
		}
		if err := json.Unmarshal(raw, &content); err != nil {
			return catalog.BirthdayCatalog{}, fmt.Errorf("birthday content %s: %w", slug, err)
		}
		if slug == defaultBirthdayKey {
			out.Default = content
			continue
		}
		out.Branches[slug] = content
	}
	return out, rows.Err()
}

// decodeHours reads a stored schedule. A document that is not a schedule
// object yields the zero schedule, which resolves as unknown and is
// reported by catalog.CheckSchedules.
func decodeHours(raw []byte) hours.WeeklySchedule {
	var schedule hours.WeeklySchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return hours.WeeklySchedule{}
	}
	return schedule
}

var _ catalog.Repository = (*PostgresRepository)(nil)
