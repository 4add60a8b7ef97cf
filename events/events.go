package events

import (
	"context"
	"sync"

	"dugout/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGameResult     EventType = "game_result"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypeBetSettled     EventType = "bet_settled"
	EventTypeProfileCreated EventType = "profile_created"
	EventTypeCreditsChanged EventType = "credits_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GameResultEvent represents a finished game with a known winner.
// Delivery is at-least-once; consumers must tolerate redelivery.
type GameResultEvent struct {
	GamePk        int64
	WinningTeamID int64
}

func (e GameResultEvent) Type() EventType {
	return EventTypeGameResult
}

// BetPlacedEvent represents a bet that entered the ledger
type BetPlacedEvent struct {
	BetID  int64
	UserID int64
	Amount int64
	GamePk *int64
	Kind   models.BetKind
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetSettledEvent represents a bet that reached a terminal state
type BetSettledEvent struct {
	BetID  int64
	UserID int64
	Kind   models.BetKind
	Payout int64
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// ProfileCreatedEvent represents a new profile with its initial credits
type ProfileCreatedEvent struct {
	UserID         int64
	InitialCredits int64
}

func (e ProfileCreatedEvent) Type() EventType {
	return EventTypeProfileCreated
}

// CreditsChangedEvent represents a credit balance change that occurred
type CreditsChangedEvent struct {
	UserID       int64
	ChangeAmount int64
	Reason       string
}

func (e CreditsChangedEvent) Type() EventType {
	return EventTypeCreditsChanged
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// EmitSync publishes an event and waits for every handler to return.
// The game-result feed uses this so a settlement pass for a game
// finishes before the next event for the same game is processed.
func (b *Bus) EmitSync(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the real bus only after the transaction commits, so
// handlers never observe uncommitted state.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Events outlive the transaction context that produced them
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after a rollback to drop pending events
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
