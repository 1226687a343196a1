package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/repository"
	"github.com/tervalon/delveforge/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateInternalName = errors.New("duplicate internal name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for base item templates
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Templates []domain.BaseItemTemplate `json:"templates"`
}

// Loader handles loading and validating the base item catalog
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error)
}

// SyncResult contains the result of syncing templates to the database
type SyncResult struct {
	TemplatesInserted int
	TemplatesUpdated  int
	TemplatesSkipped  int
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a base items JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Templates) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoTemplatesDefined)
	}

	internalNames := make(map[string]bool, len(config.Templates))

	for i := range config.Templates {
		tmpl := &config.Templates[i]

		if err := l.validateTemplate(i, tmpl, internalNames); err != nil {
			return err
		}
	}

	return nil
}

func (l *catalogLoader) validateTemplate(index int, tmpl *domain.BaseItemTemplate, internalNames map[string]bool) error {
	if tmpl.InternalName == "" {
		return fmt.Errorf(ErrFmtTemplateAtIndexEmpty, ErrInvalidConfig, index)
	}

	if internalNames[tmpl.InternalName] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateInternalName, tmpl.InternalName)
	}
	internalNames[tmpl.InternalName] = true

	if tmpl.DisplayName == "" {
		return fmt.Errorf(ErrFmtTemplateEmptyDisplay, ErrInvalidConfig, tmpl.InternalName)
	}

	if !tmpl.Slot.IsValid() {
		return fmt.Errorf(ErrFmtTemplateBadSlot, ErrInvalidConfig, tmpl.InternalName, tmpl.Slot)
	}

	if tmpl.MinItemLevel > tmpl.MaxItemLevel {
		return fmt.Errorf(ErrFmtTemplateBadLevelRange, ErrInvalidConfig, tmpl.InternalName, tmpl.MinItemLevel, tmpl.MaxItemLevel)
	}

	if tmpl.Weight <= 0 {
		return fmt.Errorf(ErrFmtTemplateBadWeight, ErrInvalidConfig, tmpl.InternalName, tmpl.Weight)
	}

	if tmpl.BaseValue <= 0 {
		return fmt.Errorf(ErrFmtTemplateNonPositiveValue, ErrInvalidConfig, tmpl.InternalName)
	}

	for _, imp := range tmpl.Implicits {
		if imp.Min > imp.Max {
			return fmt.Errorf(ErrFmtTemplateBadImplicit, ErrInvalidConfig, tmpl.InternalName, imp.Stat)
		}
	}

	if len(tmpl.FixedAffixes) > 0 && tmpl.UniqueRarity == "" {
		return fmt.Errorf(ErrFmtTemplateFixedAffixOnly, ErrInvalidConfig, tmpl.InternalName)
	}

	return nil
}

// SyncToDatabase syncs the catalog configuration to the database idempotently
func (l *catalogLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	// Check if file has changed since last sync
	hasChanged, err := hasFileChanged(ctx, repo, configPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFileChangeFailed, err)
	}

	if !hasChanged {
		log.Info(LogMsgConfigUnchanged, "path", configPath)
		return &SyncResult{}, nil
	}

	existing, err := repo.GetAllTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetExistingTemplatesFailed, err)
	}

	existingByName := make(map[string]*domain.BaseItemTemplate, len(existing))
	for i := range existing {
		existingByName[existing[i].InternalName] = &existing[i]
	}

	result := &SyncResult{}
	for i := range config.Templates {
		tmpl := &config.Templates[i]
		if err := l.syncOneTemplate(ctx, repo, tmpl, existingByName, result); err != nil {
			return nil, err
		}
	}

	// Update sync metadata
	if err := updateSyncMetadata(ctx, repo, configPath); err != nil {
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	log.Info(LogMsgSyncCompleted,
		"inserted", result.TemplatesInserted,
		"updated", result.TemplatesUpdated,
		"skipped", result.TemplatesSkipped)

	return result, nil
}

func (l *catalogLoader) syncOneTemplate(ctx context.Context, repo repository.Catalog, tmpl *domain.BaseItemTemplate, existingByName map[string]*domain.BaseItemTemplate, result *SyncResult) error {
	log := logger.FromContext(ctx)

	if existing, ok := existingByName[tmpl.InternalName]; ok {
		if templatesEqual(existing, tmpl) {
			result.TemplatesSkipped++
			return nil
		}

		if err := repo.UpdateTemplate(ctx, tmpl); err != nil {
			return fmt.Errorf(ErrMsgUpdateTemplateFailed, tmpl.InternalName, err)
		}
		result.TemplatesUpdated++
		log.Info(LogMsgUpdatedTemplate, "internal_name", tmpl.InternalName)
		return nil
	}

	if err := repo.InsertTemplate(ctx, tmpl); err != nil {
		return fmt.Errorf(ErrMsgInsertTemplateFailed, tmpl.InternalName, err)
	}
	result.TemplatesInserted++
	log.Info(LogMsgInsertedTemplate, "internal_name", tmpl.InternalName)
	return nil
}

// hasFileChanged checks if the config file has changed since last sync
func hasFileChanged(ctx context.Context, repo repository.Catalog, configPath string) (bool, error) {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return false, fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return false, fmt.Errorf(ErrMsgReadForHashFailed, err)
	}

	hash := sha256.Sum256(data)
	fileHash := hex.EncodeToString(hash[:])

	syncMeta, err := repo.GetSyncMetadata(ctx, ConfigFileName)
	if errors.Is(err, domain.ErrSyncMetadataNotFound) {
		// First sync - no metadata exists
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf(ErrMsgGetSyncMetadataFailed, err)
	}

	if syncMeta.FileHash != fileHash || !syncMeta.FileModTime.Equal(fileInfo.ModTime()) {
		return true, nil
	}

	return false, nil
}

// updateSyncMetadata updates the sync metadata after a successful sync
func updateSyncMetadata(ctx context.Context, repo repository.Catalog, configPath string) error {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf(ErrMsgReadForHashFailed, err)
	}

	hash := sha256.Sum256(data)
	fileHash := hex.EncodeToString(hash[:])

	return repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   ConfigFileName,
		LastSyncTime: time.Now(),
		FileHash:     fileHash,
		FileModTime:  fileInfo.ModTime(),
	})
}

func templatesEqual(a, b *domain.BaseItemTemplate) bool {
	if a.DisplayName != b.DisplayName ||
		a.Slot != b.Slot ||
		a.Class != b.Class ||
		a.MinItemLevel != b.MinItemLevel ||
		a.MaxItemLevel != b.MaxItemLevel ||
		a.BaseValue != b.BaseValue ||
		a.Weight != b.Weight ||
		a.UniqueRarity != b.UniqueRarity {
		return false
	}
	if !stringSlicesEqual(a.Tags, b.Tags) || !stringSlicesEqual(a.FixedAffixes, b.FixedAffixes) {
		return false
	}
	if len(a.Implicits) != len(b.Implicits) {
		return false
	}
	for i := range a.Implicits {
		if a.Implicits[i] != b.Implicits[i] {
			return false
		}
	}
	return true
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
