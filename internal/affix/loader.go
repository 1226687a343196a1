package affix

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

// Sentinel errors for the affix loader
var (
	ErrDuplicateKey = errors.New("duplicate affix key")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Definition is a single affix entry from the configuration file. An affix
// is eligible for an item when the item's slot appears in Slots and the item
// level falls inside [MinItemLevel, MaxItemLevel].
type Definition struct {
	Key          string           `json:"key"`
	Kind         domain.AffixKind `json:"kind"`
	Name         string           `json:"name"`
	Stat         string           `json:"stat"`
	Slots        []string         `json:"slots"`
	MinItemLevel int              `json:"min_ilvl"`
	MaxItemLevel int              `json:"max_ilvl"`
	MagnitudeMin float64          `json:"magnitude_min"`
	MagnitudeMax float64          `json:"magnitude_max"`
	Weight       int              `json:"weight"`

	// Group prevents stacking: an item never carries two affixes from the
	// same group. Empty group means the key itself is the group.
	Group string `json:"group,omitempty"`
	Tier  int    `json:"tier,omitempty"`
}

// GroupKey returns the stacking group, falling back to the affix key.
func (d *Definition) GroupKey() string {
	if d.Group != "" {
		return d.Group
	}
	return d.Key
}

// AppliesTo reports whether the affix can roll on the given slot.
func (d *Definition) AppliesTo(slot domain.EquipSlot) bool {
	for _, s := range d.Slots {
		if domain.EquipSlot(s) == slot {
			return true
		}
	}
	return false
}

// Config represents the JSON configuration for affix definitions
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Affixes []Definition `json:"affixes"`
}

// Loader handles loading and validating the affix configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (int, error)
}

type affixLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &affixLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses an affix JSON file
func (l *affixLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the affix configuration for errors
func (l *affixLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Affixes) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoAffixesListed)
	}

	keys := make(map[string]bool, len(config.Affixes))

	for i := range config.Affixes {
		def := &config.Affixes[i]

		if def.Key == "" {
			return fmt.Errorf(ErrFmtAffixAtIndexEmptyKey, ErrInvalidConfig, i)
		}

		if keys[def.Key] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateKey, def.Key)
		}
		keys[def.Key] = true

		if def.Kind != domain.AffixPrefix && def.Kind != domain.AffixSuffix {
			return fmt.Errorf(ErrFmtAffixBadKind, ErrInvalidConfig, def.Key, def.Kind)
		}

		if def.Name == "" {
			return fmt.Errorf(ErrFmtAffixEmptyName, ErrInvalidConfig, def.Key)
		}

		if def.Stat == "" {
			return fmt.Errorf(ErrFmtAffixEmptyStat, ErrInvalidConfig, def.Key)
		}

		if len(def.Slots) == 0 {
			return fmt.Errorf(ErrFmtAffixNoSlots, ErrInvalidConfig, def.Key)
		}

		for _, s := range def.Slots {
			if !domain.EquipSlot(s).IsValid() {
				return fmt.Errorf(ErrFmtAffixBadSlot, ErrInvalidConfig, def.Key, s)
			}
		}

		if def.MinItemLevel > def.MaxItemLevel {
			return fmt.Errorf(ErrFmtAffixBadLevelRange, ErrInvalidConfig, def.Key, def.MinItemLevel, def.MaxItemLevel)
		}

		if def.MagnitudeMin > def.MagnitudeMax {
			return fmt.Errorf(ErrFmtAffixBadMagnitude, ErrInvalidConfig, def.Key, def.MagnitudeMin, def.MagnitudeMax)
		}

		if def.Weight <= 0 {
			return fmt.Errorf(ErrFmtAffixBadWeight, ErrInvalidConfig, def.Key, def.Weight)
		}
	}

	return nil
}

// SyncToDatabase upserts every affix definition. Returns the number of rows
// written, or zero when the config file is unchanged since the last sync.
func (l *affixLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (int, error) {
	log := logger.FromContext(ctx)

	hasChanged, err := hasFileChanged(ctx, repo, configPath)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCheckFileChangeFail, err)
	}

	if !hasChanged {
		log.Info(LogMsgConfigUnchanged, "path", configPath)
		return 0, nil
	}

	written := 0
	for i := range config.Affixes {
		def := &config.Affixes[i]
		record := &repository.AffixRecord{
			Key:          def.Key,
			Kind:         def.Kind,
			Name:         def.Name,
			Stat:         def.Stat,
			Slots:        def.Slots,
			MinItemLevel: def.MinItemLevel,
			MaxItemLevel: def.MaxItemLevel,
			MagnitudeMin: def.MagnitudeMin,
			MagnitudeMax: def.MagnitudeMax,
			Weight:       def.Weight,
			Group:        def.Group,
			Tier:         def.Tier,
		}

		if err := repo.UpsertAffix(ctx, record); err != nil {
			return written, fmt.Errorf(ErrMsgUpsertAffixFailed, def.Key, err)
		}
		written++
		log.Debug(LogMsgUpsertedAffix, "key", def.Key)
	}

	if err := updateSyncMetadata(ctx, repo, configPath); err != nil {
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	log.Info(LogMsgSyncCompleted, "affixes", written)
	return written, nil
}

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
