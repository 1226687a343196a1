package dungeon

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/event"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/mapparser"
	"github.com/tervalon/delveforge/internal/metrics"
	"github.com/tervalon/delveforge/internal/populate"
	"github.com/tervalon/delveforge/internal/repository"
	"github.com/tervalon/delveforge/internal/worker"
)

// Service orchestrates map parsing, storage, caching and population.
type Service interface {
	Parse(ctx context.Context, name string, image io.Reader, opts mapparser.Options) (*domain.MapDefinition, error)
	GetMap(ctx context.Context, id string) (*domain.MapDefinition, error)
	ListMaps(ctx context.Context) ([]repository.MapSummary, error)
	DeleteMap(ctx context.Context, id string) error
	Populate(ctx context.Context, mapID string, opts populate.Options) (*populate.Result, error)
	EnqueuePopulate(ctx context.Context, mapID string, opts populate.Options) error
}

type service struct {
	store    repository.MapStore
	cache    *mapCache
	eventBus event.Bus
	pool     *worker.Pool
	newRng   func() *rand.Rand
}

// Config carries the service's constructor options.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration

	// Pool handles async populate jobs. Nil disables EnqueuePopulate.
	Pool *worker.Pool

	// NewRng builds the random source for each populate pass. Defaults
	// to a time-seeded source.
	NewRng func() *rand.Rand
}

// NewService creates a dungeon Service.
func NewService(store repository.MapStore, eventBus event.Bus, cfg Config) Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.NewRng == nil {
		cfg.NewRng = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // placement randomness, not security critical
		}
	}

	return &service{
		store:    store,
		cache:    newMapCache(cfg.CacheSize, cfg.CacheTTL),
		eventBus: eventBus,
		pool:     cfg.Pool,
		newRng:   cfg.NewRng,
	}
}

// Parse converts an uploaded image into a stored map.
func (s *service) Parse(ctx context.Context, name string, image io.Reader, opts mapparser.Options) (*domain.MapDefinition, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyMapName)
	}

	start := time.Now()
	m, err := mapparser.ParseImage(ctx, image, name, opts)
	if err != nil {
		metrics.MapsParsed.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.MapParseDuration.Observe(time.Since(start).Seconds())

	m.ID = uuid.NewString()

	if err := s.store.SaveMap(ctx, m); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveMapFailed, err)
	}

	s.cache.Set(m.ID, m)

	log.Info(LogMsgMapParsed, "id", m.ID, "name", name, "rooms", len(m.Rooms), "corridors", len(m.Corridors))

	s.publish(ctx, event.NewMapParsedEvent(m))

	return m, nil
}

// GetMap returns a map by id, serving from the LRU cache when possible.
// Tile grids are decoded lazily after a database fetch.
func (s *service) GetMap(ctx context.Context, id string) (*domain.MapDefinition, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyMapID)
	}

	if m, ok := s.cache.Get(id); ok {
		return m, nil
	}

	m, err := s.store.GetMapByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(m.Tiles) == 0 && m.TileData != "" {
		tiles, err := mapparser.DecodeTileData(m.TileData, m.Width, m.Depth)
		if err != nil {
			return nil, err
		}
		m.Tiles = tiles
	}

	s.cache.Set(id, m)
	return m, nil
}

func (s *service) ListMaps(ctx context.Context) ([]repository.MapSummary, error) {
	return s.store.ListMaps(ctx)
}

func (s *service) DeleteMap(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyMapID)
	}

	if err := s.store.DeleteMap(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	logger.FromContext(ctx).Info(LogMsgMapDeleted, "id", id)
	return nil
}

// Populate runs a synchronous population pass and persists the placements.
func (s *service) Populate(ctx context.Context, mapID string, opts populate.Options) (*populate.Result, error) {
	return s.populate(ctx, mapID, opts, false)
}

func (s *service) populate(ctx context.Context, mapID string, opts populate.Options, async bool) (*populate.Result, error) {
	m, err := s.GetMap(ctx, mapID)
	if err != nil {
		return nil, err
	}

	result, err := populate.Populate(ctx, m, opts, s.newRng())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPopulateFailed, mapID, err)
	}

	if err := s.store.UpdatePlacements(ctx, mapID, m.Enemies, m.PlacedProps); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateFailed, err)
	}

	s.cache.Set(mapID, m)

	logger.FromContext(ctx).Info(LogMsgMapPopulated,
		"id", mapID, "monsters", result.MonstersPlaced, "props", result.PropsPlaced, "async", async)

	s.publish(ctx, event.NewMapPopulatedEvent(mapID, result.MonstersPlaced, result.PropsPlaced, async))

	return result, nil
}

// EnqueuePopulate schedules an async population pass on the worker pool.
func (s *service) EnqueuePopulate(ctx context.Context, mapID string, opts populate.Options) error {
	if s.pool == nil {
		return fmt.Errorf("%w: no worker pool configured", domain.ErrInvalidInput)
	}

	// Fail fast on unknown maps rather than inside the worker.
	if _, err := s.GetMap(ctx, mapID); err != nil {
		return err
	}

	job := &populateJob{svc: s, mapID: mapID, opts: opts}
	if !s.pool.TryEnqueue(job) {
		return fmt.Errorf("%w: %s", domain.ErrQueueFull, mapID)
	}

	logger.FromContext(ctx).Info(LogMsgPopulateEnqueued, "id", mapID)
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", err)
	}
}

// populateJob runs one async population pass on the worker pool.
type populateJob struct {
	svc   *service
	mapID string
	opts  populate.Options
}

func (j *populateJob) Process(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgAsyncPopulateStarted, "id", j.mapID)
	_, err := j.svc.populate(ctx, j.mapID, j.opts, true)
	return err
}
