package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetAllTemplates returns every base item template
func (r *CatalogRepository) GetAllTemplates(ctx context.Context) ([]domain.BaseItemTemplate, error) {
	query := `
		SELECT internal_name, display_name, slot, item_class, min_ilvl, max_ilvl,
		       base_value, weight, implicits, tags, unique_rarity, fixed_affixes
		FROM item_templates
		ORDER BY internal_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.BaseItemTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tmpl)
	}
	return templates, rows.Err()
}

// GetTemplateByName returns the template with the given internal name
func (r *CatalogRepository) GetTemplateByName(ctx context.Context, internalName string) (*domain.BaseItemTemplate, error) {
	query := `
		SELECT internal_name, display_name, slot, item_class, min_ilvl, max_ilvl,
		       base_value, weight, implicits, tags, unique_rarity, fixed_affixes
		FROM item_templates
		WHERE internal_name = $1
	`
	row := r.db.QueryRow(ctx, query, internalName)
	tmpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, internalName)
		}
		return nil, err
	}
	return tmpl, nil
}

// InsertTemplate inserts a new base item template
func (r *CatalogRepository) InsertTemplate(ctx context.Context, tmpl *domain.BaseItemTemplate) error {
	implicits, err := json.Marshal(tmpl.Implicits)
	if err != nil {
		return fmt.Errorf("failed to marshal implicits: %w", err)
	}

	query := `
		INSERT INTO item_templates (internal_name, display_name, slot, item_class,
			min_ilvl, max_ilvl, base_value, weight, implicits, tags,
			unique_rarity, fixed_affixes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		tmpl.InternalName, tmpl.DisplayName, string(tmpl.Slot), string(tmpl.Class),
		tmpl.MinItemLevel, tmpl.MaxItemLevel, tmpl.BaseValue, tmpl.Weight,
		implicits, tmpl.Tags, string(tmpl.UniqueRarity), tmpl.FixedAffixes)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

// UpdateTemplate updates an existing base item template
func (r *CatalogRepository) UpdateTemplate(ctx context.Context, tmpl *domain.BaseItemTemplate) error {
	implicits, err := json.Marshal(tmpl.Implicits)
	if err != nil {
		return fmt.Errorf("failed to marshal implicits: %w", err)
	}

	query := `
		UPDATE item_templates
		SET display_name = $2, slot = $3, item_class = $4, min_ilvl = $5,
		    max_ilvl = $6, base_value = $7, weight = $8, implicits = $9,
		    tags = $10, unique_rarity = $11, fixed_affixes = $12, updated_at = NOW()
		WHERE internal_name = $1
	`
	tag, err := r.db.Exec(ctx, query,
		tmpl.InternalName, tmpl.DisplayName, string(tmpl.Slot), string(tmpl.Class),
		tmpl.MinItemLevel, tmpl.MaxItemLevel, tmpl.BaseValue, tmpl.Weight,
		implicits, tmpl.Tags, string(tmpl.UniqueRarity), tmpl.FixedAffixes)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, tmpl.InternalName)
	}
	return nil
}

// GetAllAffixes returns every affix definition
func (r *CatalogRepository) GetAllAffixes(ctx context.Context) ([]repository.AffixRecord, error) {
	query := `
		SELECT key, kind, name, stat, slots, min_ilvl, max_ilvl,
		       magnitude_min, magnitude_max, weight, affix_group, tier
		FROM affixes
		ORDER BY key
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query affixes: %w", err)
	}
	defer rows.Close()

	var records []repository.AffixRecord
	for rows.Next() {
		var rec repository.AffixRecord
		var kind string
		if err := rows.Scan(&rec.Key, &kind, &rec.Name, &rec.Stat, &rec.Slots,
			&rec.MinItemLevel, &rec.MaxItemLevel, &rec.MagnitudeMin, &rec.MagnitudeMax,
			&rec.Weight, &rec.Group, &rec.Tier); err != nil {
			return nil, fmt.Errorf("failed to scan affix: %w", err)
		}
		rec.Kind = domain.AffixKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpsertAffix inserts or updates an affix definition
func (r *CatalogRepository) UpsertAffix(ctx context.Context, affix *repository.AffixRecord) error {
	query := `
		INSERT INTO affixes (key, kind, name, stat, slots, min_ilvl, max_ilvl,
			magnitude_min, magnitude_max, weight, affix_group, tier, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (key) DO UPDATE
		SET kind = EXCLUDED.kind, name = EXCLUDED.name, stat = EXCLUDED.stat,
		    slots = EXCLUDED.slots, min_ilvl = EXCLUDED.min_ilvl,
		    max_ilvl = EXCLUDED.max_ilvl, magnitude_min = EXCLUDED.magnitude_min,
		    magnitude_max = EXCLUDED.magnitude_max, weight = EXCLUDED.weight,
		    affix_group = EXCLUDED.affix_group, tier = EXCLUDED.tier,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		affix.Key, string(affix.Kind), affix.Name, affix.Stat, affix.Slots,
		affix.MinItemLevel, affix.MaxItemLevel, affix.MagnitudeMin, affix.MagnitudeMax,
		affix.Weight, affix.Group, affix.Tier)
	if err != nil {
		return fmt.Errorf("failed to upsert affix: %w", err)
	}
	return nil
}

// GetSyncMetadata returns the sync metadata for a config file
func (r *CatalogRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	query := `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata
		WHERE config_name = $1
	`
	var meta domain.SyncMetadata
	err := r.db.QueryRow(ctx, query, configName).Scan(
		&meta.ConfigName, &meta.LastSyncTime, &meta.FileHash, &meta.FileModTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSyncMetadataNotFound, configName)
		}
		return nil, fmt.Errorf("failed to get sync metadata: %w", err)
	}
	return &meta, nil
}

// UpsertSyncMetadata inserts or updates sync metadata
func (r *CatalogRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	query := `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time,
		    file_hash = EXCLUDED.file_hash,
		    file_mod_time = EXCLUDED.file_mod_time
	`
	_, err := r.db.Exec(ctx, query,
		metadata.ConfigName, metadata.LastSyncTime, metadata.FileHash, metadata.FileModTime)
	if err != nil {
		return fmt.Errorf("failed to upsert sync metadata: %w", err)
	}
	return nil
}

// scanTemplate reads one template row from either pgx.Row or pgx.Rows.
func scanTemplate(row pgx.Row) (*domain.BaseItemTemplate, error) {
	var tmpl domain.BaseItemTemplate
	var slot, class, uniqueRarity string
	var implicits []byte

	err := row.Scan(&tmpl.InternalName, &tmpl.DisplayName, &slot, &class,
		&tmpl.MinItemLevel, &tmpl.MaxItemLevel, &tmpl.BaseValue, &tmpl.Weight,
		&implicits, &tmpl.Tags, &uniqueRarity, &tmpl.FixedAffixes)
	if err != nil {
		return nil, err
	}

	tmpl.Slot = domain.EquipSlot(slot)
	tmpl.Class = domain.ItemClass(class)
	tmpl.UniqueRarity = domain.Rarity(uniqueRarity)

	if len(implicits) > 0 {
		if err := json.Unmarshal(implicits, &tmpl.Implicits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal implicits: %w", err)
		}
	}
	return &tmpl, nil
}
