package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/bilgisen/contentfeed/internal/config"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/translation"
)

//go:embed schema.sql
var schema string

// Postgres serves records from the relational content tables.
type Postgres struct {
	db *sql.DB
}

var _ sources.Store = (*Postgres)(nil)

// OpenPostgres connects to cfg.DatabaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the content tables when they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const orderBySortOrder = ` ORDER BY COALESCE(sort_order, 999), id`

const sectionColumns = `id, COALESCE(slug, ''), page, type,
	COALESCE(title_key, ''), COALESCE(subtitle_key, ''), COALESCE(description_key, ''),
	COALESCE(button_text_key, ''), COALESCE(button_url, ''), COALESCE(image_url, ''),
	COALESCE(video_url, ''), COALESCE(items, '[]'::jsonb), sort_order, is_active`

func scanSection(row interface{ Scan(...any) error }) (models.SectionRecord, error) {
	var (
		rec   models.SectionRecord
		items []byte
		order sql.NullInt64
	)
	err := row.Scan(&rec.ID, &rec.Slug, &rec.Page, &rec.Type,
		&rec.TitleKey, &rec.SubtitleKey, &rec.DescriptionKey,
		&rec.ButtonTextKey, &rec.ButtonURL, &rec.ImageURL,
		&rec.VideoURL, &items, &order, &rec.IsActive)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return rec, fmt.Errorf("section %d items: %w", rec.ID, err)
	}
	rec.SortOrder = nullableOrder(order)
	return rec, nil
}

func nullableOrder(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func (p *Postgres) Hero(ctx context.Context, page string) (*models.SectionRecord, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE is_active AND page = $1 AND type = $2`+orderBySortOrder+` LIMIT 1`,
		page, models.SectionTypeHero)
	rec, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hero section: %w", err)
	}
	return &rec, nil
}

func (p *Postgres) DynamicSections(ctx context.Context, page string) ([]models.SectionRecord, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE is_active AND page = $1 AND type <> $2`+orderBySortOrder,
		page, models.SectionTypeHero)
	if err != nil {
		return nil, fmt.Errorf("dynamic sections: %w", err)
	}
	defer rows.Close()

	out := []models.SectionRecord{}
	for rows.Next() {
		rec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("dynamic sections: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// mediaWhere builds the shared WHERE clause of media lists and counts.
func mediaWhere(f models.MediaFilter) (string, []any) {
	clauses := []string{"is_active"}
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.Kind != "" && f.Kind != models.MediaKindAll {
		add("type = $%d", string(f.Kind))
	}
	if f.SourceType != "" {
		add("source_type = $%d", string(f.SourceType))
	}
	if f.FeaturedOnly {
		clauses = append(clauses, "is_featured")
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (p *Postgres) ListMedia(ctx context.Context, f models.MediaFilter) ([]models.MediaRecord, error) {
	where, args := mediaWhere(f)
	query := `SELECT id, public_id::text, type, source_type, COALESCE(file_path, ''),
		COALESCE(drive_file_id, ''), COALESCE(external_url, ''), COALESCE(thumbnail_path, ''),
		COALESCE(title_key, ''), COALESCE(description_key, ''), is_featured, is_active, sort_order, created_at
		FROM media_items` + where + orderBySortOrder
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	out := []models.MediaRecord{}
	for rows.Next() {
		var (
			rec   models.MediaRecord
			order sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.PublicID, &rec.Kind, &rec.SourceType, &rec.FilePath,
			&rec.DriveFileID, &rec.ExternalURL, &rec.ThumbnailPath,
			&rec.TitleKey, &rec.DescriptionKey, &rec.IsFeatured, &rec.IsActive, &order, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		rec.SortOrder = nullableOrder(order)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) CountMedia(ctx context.Context, f models.MediaFilter) (int, error) {
	where, args := mediaWhere(f)
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_items`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return n, nil
}

// featuredTable describes one of the organization, testimonial and story tables.
type featuredTable struct {
	kind    string
	table   string
	joinTbl string
	joinCol string
}

var (
	organizationsTable = featuredTable{KindOrganization, "organizations", "organization_categories", "organization_id"}
	testimonialsTable  = featuredTable{KindTestimony, "testimonials", "testimonial_categories", "testimonial_id"}
	storiesTable       = featuredTable{KindStory, "stories", "story_categories", "story_id"}
)

func (t featuredTable) selectSQL() string {
	return `SELECT t.id, t.public_id::text, t.name_key, COALESCE(t.description_key, ''),
		COALESCE(t.background_image, ''), COALESCE(t.url, ''), t.is_featured, t.is_active, t.sort_order,
		COALESCE((
			SELECT json_agg(json_build_object('id', c.id, 'slug', c.slug, 'name_key', c.name_key)
				ORDER BY COALESCE(c.sort_order, 999), c.id)
			FROM categories c JOIN ` + t.joinTbl + ` j ON j.category_id = c.id
			WHERE j.` + t.joinCol + ` = t.id AND c.is_active
		), '[]'::json)
		FROM ` + t.table + ` t WHERE t.is_active`
}

func scanFeatured(row interface{ Scan(...any) error }) (models.FeaturedRecord, error) {
	var (
		rec        models.FeaturedRecord
		order      sql.NullInt64
		categories []byte
	)
	err := row.Scan(&rec.ID, &rec.PublicID, &rec.NameKey, &rec.DescriptionKey,
		&rec.BackgroundImage, &rec.URL, &rec.IsFeatured, &rec.IsActive, &order, &categories)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(categories, &rec.Categories); err != nil {
		return rec, fmt.Errorf("categories of %d: %w", rec.ID, err)
	}
	rec.SortOrder = nullableOrder(order)
	return rec, nil
}

func (p *Postgres) listFeatured(ctx context.Context, t featuredTable, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	query := t.selectSQL()
	var args []any
	if f.FeaturedOnly {
		query += " AND t.is_featured"
	}
	query += " ORDER BY COALESCE(t.sort_order, 999), t.id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $1"
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	out := []models.FeaturedRecord{}
	for rows.Next() {
		rec, err := scanFeatured(rows)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", t.table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) findFeatured(ctx context.Context, t featuredTable, identifier string) (*models.FeaturedRecord, error) {
	id, ok := sources.ParseIdentifier(identifier)
	if !ok {
		return nil, models.NewNotFound(t.kind, identifier)
	}

	query := t.selectSQL()
	var arg any
	if id.PublicID != "" {
		query += " AND t.public_id = $1::uuid"
		arg = id.PublicID
	} else {
		query += " AND t.id = $1"
		arg = id.ID
	}

	rec, err := scanFeatured(p.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFound(t.kind, identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t.table, err)
	}
	return &rec, nil
}

func (p *Postgres) ListOrganizations(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return p.listFeatured(ctx, organizationsTable, f)
}

func (p *Postgres) FindOrganization(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return p.findFeatured(ctx, organizationsTable, identifier)
}

func (p *Postgres) ListTestimonials(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return p.listFeatured(ctx, testimonialsTable, f)
}

func (p *Postgres) FindTestimonial(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return p.findFeatured(ctx, testimonialsTable, identifier)
}

func (p *Postgres) ListStories(ctx context.Context, f models.FeaturedFilter) ([]models.FeaturedRecord, error) {
	return p.listFeatured(ctx, storiesTable, f)
}

func (p *Postgres) FindStory(ctx context.Context, identifier string) (*models.FeaturedRecord, error) {
	return p.findFeatured(ctx, storiesTable, identifier)
}

func (p *Postgres) ListTimelineEvents(ctx context.Context) ([]models.TimelineEventRecord, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, event_date, title_key, COALESCE(description_key, ''),
		COALESCE(image_url, ''), is_active, sort_order
		FROM timeline_events WHERE is_active`+orderBySortOrder)
	if err != nil {
		return nil, fmt.Errorf("list timeline events: %w", err)
	}
	defer rows.Close()

	out := []models.TimelineEventRecord{}
	for rows.Next() {
		var (
			rec   models.TimelineEventRecord
			order sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.TitleKey, &rec.DescriptionKey,
			&rec.ImageURL, &rec.IsActive, &order); err != nil {
			return nil, fmt.Errorf("list timeline events: %w", err)
		}
		rec.SortOrder = nullableOrder(order)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LookupTranslations fetches every requested (key, lang) pair in one query.
func (p *Postgres) LookupTranslations(ctx context.Context, keys []models.LocalizationKey, langs []models.Lang) ([]translation.Entry, error) {
	keyArgs := make([]string, len(keys))
	for i, k := range keys {
		keyArgs[i] = string(k)
	}
	langArgs := make([]string, len(langs))
	for i, l := range langs {
		langArgs[i] = string(l)
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT key, lang, text FROM translations WHERE key = ANY($1) AND lang = ANY($2)`,
		pq.Array(keyArgs), pq.Array(langArgs))
	if err != nil {
		return nil, fmt.Errorf("lookup translations: %w", err)
	}
	defer rows.Close()

	var out []translation.Entry
	for rows.Next() {
		var e translation.Entry
		if err := rows.Scan(&e.Key, &e.Lang, &e.Text); err != nil {
			return nil, fmt.Errorf("lookup translations: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
