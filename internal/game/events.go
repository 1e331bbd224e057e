package game

import (
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// EventKind is the meaning of a player contact.
type EventKind int

const (
	EventLethalCollision EventKind = iota
	EventOpeningPassed
)

func (k EventKind) String() string {
	switch k {
	case EventLethalCollision:
		return "lethal_collision"
	case EventOpeningPassed:
		return "opening_passed"
	default:
		return "unknown"
	}
}

// Event is a game outcome derived from one contact during the current tick.
type Event struct {
	Kind     EventKind
	Obstacle ecs.Entity
	Class    ObstacleKind
}

// EventQueue holds the events of one tick. The tick driver clears it at the end of every tick.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the queued events in emission order.
func (q *EventQueue) Events() []Event {
	return q.events
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Count returns how many queued events have kind k.
func (q *EventQueue) Count(k EventKind) int {
	n := 0
	for _, e := range q.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Clear drops every event.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}

// Translator turns contact-began notifications into game events.
type Translator struct {
	world *World
}

// NewTranslator creates a translator that classifies bodies using w's tags.
func NewTranslator(w *World) *Translator {
	return &Translator{world: w}
}

// Translate pushes one event for every contact between the player and an
// obstacle. Other contacts are ignored.
func (t *Translator) Translate(contacts []physics.Contact, q *EventQueue) {
	player, _, ok := t.world.Players.Single()
	if !ok {
		return
	}
	for _, c := range contacts {
		other, ok := c.Involves(player)
		if !ok {
			continue
		}
		obs, ok := t.world.Obstacles.Get(other)
		if !ok {
			continue
		}
		kind := EventOpeningPassed
		if obs.Kind.Lethal() {
			kind = EventLethalCollision
		}
		q.Push(Event{Kind: kind, Obstacle: other, Class: obs.Kind})
	}
}

// ScoreTracker counts passed openings.
type ScoreTracker struct {
	value uint64
}

// Value returns the current score.
func (s *ScoreTracker) Value() uint64 { return s.value }

// Consume adds one point per opening-passed event in q and returns the points added.
func (s *ScoreTracker) Consume(q *EventQueue) int {
	n := q.Count(EventOpeningPassed)
	s.value += uint64(n)
	return n
}

// Reset zeroes the score.
func (s *ScoreTracker) Reset() { s.value = 0 }
