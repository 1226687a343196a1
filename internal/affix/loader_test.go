package affix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/repository"
)

type mockAffixRepo struct {
	upserted       []string
	upsertErr      error
	getMetadataErr error
	syncMetadata   *domain.SyncMetadata
}

func (m *mockAffixRepo) GetAllTemplates(_ context.Context) ([]domain.BaseItemTemplate, error) {
	return nil, nil
}

func (m *mockAffixRepo) GetTemplateByName(_ context.Context, _ string) (*domain.BaseItemTemplate, error) {
	return nil, domain.ErrTemplateNotFound
}

func (m *mockAffixRepo) InsertTemplate(_ context.Context, _ *domain.BaseItemTemplate) error {
	return nil
}

func (m *mockAffixRepo) UpdateTemplate(_ context.Context, _ *domain.BaseItemTemplate) error {
	return nil
}

func (m *mockAffixRepo) GetAllAffixes(_ context.Context) ([]repository.AffixRecord, error) {
	return nil, nil
}

func (m *mockAffixRepo) UpsertAffix(_ context.Context, affix *repository.AffixRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, affix.Key)
	return nil
}

func (m *mockAffixRepo) GetSyncMetadata(_ context.Context, _ string) (*domain.SyncMetadata, error) {
	if m.getMetadataErr != nil {
		return nil, m.getMetadataErr
	}
	if m.syncMetadata == nil {
		return nil, domain.ErrSyncMetadataNotFound
	}
	return m.syncMetadata, nil
}

func (m *mockAffixRepo) UpsertSyncMetadata(_ context.Context, metadata *domain.SyncMetadata) error {
	m.syncMetadata = metadata
	return nil
}

func affixConfig(defs ...Definition) *Config {
	return &Config{Version: "1.0", Affixes: defs}
}

func TestValidate_ValidAffixConfig(t *testing.T) {
	loader := NewLoader()
	config := affixConfig(
		testDefinition("sharp", domain.AffixPrefix, 100),
		testDefinition("of_the_bear", domain.AffixSuffix, 50),
	)

	assert.NoError(t, loader.Validate(config))
}

func TestValidate_AffixConfigErrors(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name   string
		mutate func(*Definition)
		errIs  error
	}{
		{"empty key", func(d *Definition) { d.Key = "" }, ErrInvalidConfig},
		{"bad kind", func(d *Definition) { d.Kind = "infix" }, ErrInvalidConfig},
		{"empty name", func(d *Definition) { d.Name = "" }, ErrInvalidConfig},
		{"empty stat", func(d *Definition) { d.Stat = "" }, ErrInvalidConfig},
		{"no slots", func(d *Definition) { d.Slots = nil }, ErrInvalidConfig},
		{"unknown slot", func(d *Definition) { d.Slots = []string{"shoulders"} }, ErrInvalidConfig},
		{"inverted level band", func(d *Definition) { d.MinItemLevel = 50; d.MaxItemLevel = 10 }, ErrInvalidConfig},
		{"inverted magnitude", func(d *Definition) { d.MagnitudeMin = 10; d.MagnitudeMax = 1 }, ErrInvalidConfig},
		{"zero weight", func(d *Definition) { d.Weight = 0 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition("sharp", domain.AffixPrefix, 100)
			tt.mutate(&def)
			assert.ErrorIs(t, loader.Validate(affixConfig(def)), tt.errIs)
		})
	}
}

func TestValidate_DuplicateAffixKey(t *testing.T) {
	loader := NewLoader()
	config := affixConfig(
		testDefinition("sharp", domain.AffixPrefix, 100),
		testDefinition("sharp", domain.AffixPrefix, 100),
	)

	assert.ErrorIs(t, loader.Validate(config), ErrDuplicateKey)
}

func TestSyncToDatabase_UpsertsAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affixes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0","affixes":[]}`), 0644))

	repo := &mockAffixRepo{}
	loader := NewLoader()
	config := affixConfig(
		testDefinition("sharp", domain.AffixPrefix, 100),
		testDefinition("of_the_bear", domain.AffixSuffix, 50),
	)

	written, err := loader.SyncToDatabase(context.Background(), config, repo, path)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.ElementsMatch(t, []string{"sharp", "of_the_bear"}, repo.upserted)
	assert.NotNil(t, repo.syncMetadata)

	// Unchanged file skips the second sync.
	written, err = loader.SyncToDatabase(context.Background(), config, repo, path)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
	assert.Len(t, repo.upserted, 2)
}

func TestSyncToDatabase_MetadataLookupErrorPropagates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affixes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0","affixes":[]}`), 0644))

	repo := &mockAffixRepo{getMetadataErr: errors.New("connection refused")}
	loader := NewLoader()

	_, err := loader.SyncToDatabase(context.Background(), affixConfig(testDefinition("sharp", domain.AffixPrefix, 100)), repo, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, repo.upserted)
}

func TestSyncToDatabase_UpsertError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affixes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0","affixes":[]}`), 0644))

	repo := &mockAffixRepo{upsertErr: errors.New("db down")}
	loader := NewLoader()

	_, err := loader.SyncToDatabase(context.Background(), affixConfig(testDefinition("sharp", domain.AffixPrefix, 100)), repo, path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sharp")
}
