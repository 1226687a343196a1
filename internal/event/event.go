package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tervalon/delveforge/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	LootGenerated Type = "loot.generated"
	MapParsed     Type = "map.parsed"
	MapPopulated  Type = "map.populated"
)

// Typed event payloads for type safety

// LootGeneratedPayloadV1 is the typed payload for loot generation events
type LootGeneratedPayloadV1 struct {
	ItemID    string        `json:"item_id"`
	Template  string        `json:"template"`
	Rarity    domain.Rarity `json:"rarity"`
	ItemLevel int           `json:"ilvl"`
	Slot      string        `json:"slot"`
	Timestamp int64         `json:"timestamp"`
}

// MapParsedPayloadV1 is the typed payload for map parse events
type MapParsedPayloadV1 struct {
	MapID      string `json:"map_id"`
	Name       string `json:"name"`
	Rooms      int    `json:"rooms"`
	Corridors  int    `json:"corridors"`
	FloorTiles int    `json:"floor_tiles"`
	Timestamp  int64  `json:"timestamp"`
}

// MapPopulatedPayloadV1 is the typed payload for map population events
type MapPopulatedPayloadV1 struct {
	MapID     string `json:"map_id"`
	Enemies   int    `json:"enemies"`
	Props     int    `json:"props"`
	Async     bool   `json:"async"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewLootGeneratedEvent creates a new loot generated event
func NewLootGeneratedEvent(item *domain.EquipmentItem) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LootGenerated,
		Payload: LootGeneratedPayloadV1{
			ItemID:    item.ID,
			Template:  item.TemplateName,
			Rarity:    item.Rarity,
			ItemLevel: item.ItemLevel,
			Slot:      string(item.Slot),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewMapParsedEvent creates a new map parsed event
func NewMapParsedEvent(m *domain.MapDefinition) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MapParsed,
		Payload: MapParsedPayloadV1{
			MapID:      m.ID,
			Name:       m.Name,
			Rooms:      len(m.Rooms),
			Corridors:  len(m.Corridors),
			FloorTiles: m.FloorCount(),
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewMapPopulatedEvent creates a new map populated event
func NewMapPopulatedEvent(mapID string, enemies, props int, async bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MapPopulated,
		Payload: MapPopulatedPayloadV1{
			MapID:     mapID,
			Enemies:   enemies,
			Props:     props,
			Async:     async,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the rest.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
