package metrics

import (
	"context"

	"github.com/tervalon/delveforge/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	bus.Subscribe(event.LootGenerated, e.HandleEvent)
	bus.Subscribe(event.MapParsed, e.HandleEvent)
	bus.Subscribe(event.MapPopulated, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	switch evt.Type {
	case event.LootGenerated:
		if payload, ok := evt.Payload.(event.LootGeneratedPayloadV1); ok {
			LootGenerated.WithLabelValues(string(payload.Rarity), payload.Slot).Inc()
		}
	case event.MapParsed:
		if _, ok := evt.Payload.(event.MapParsedPayloadV1); ok {
			MapsParsed.WithLabelValues("ok").Inc()
		}
	case event.MapPopulated:
		if _, ok := evt.Payload.(event.MapPopulatedPayloadV1); ok {
			MapsPopulated.Inc()
		}
	}
	return nil
}
