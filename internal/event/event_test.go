package event

import (
	"context"
	"errors"
	"testing"

	"github.com/tervalon/delveforge/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	secondCalled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected aggregated error from failing handler")
	}
	if !secondCalled {
		t.Error("Second handler should run despite first handler's error")
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: Type("unheard")})
	if err != nil {
		t.Errorf("Publish with no subscribers should be a no-op, got %v", err)
	}
}

func TestNewLootGeneratedEvent(t *testing.T) {
	item := &domain.EquipmentItem{
		ID:           "abc-123",
		TemplateName: "sword_iron",
		Rarity:       domain.RarityRare,
		ItemLevel:    12,
		Slot:         domain.SlotMainHand,
	}

	evt := NewLootGeneratedEvent(item)

	if evt.Type != LootGenerated {
		t.Errorf("Expected type %s, got %s", LootGenerated, evt.Type)
	}
	payload, ok := evt.Payload.(LootGeneratedPayloadV1)
	if !ok {
		t.Fatalf("Expected LootGeneratedPayloadV1, got %T", evt.Payload)
	}
	if payload.Rarity != domain.RarityRare || payload.ItemLevel != 12 {
		t.Errorf("Payload fields not populated: %+v", payload)
	}
}
