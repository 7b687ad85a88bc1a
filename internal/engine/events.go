package engine

// EventKind identifies something the player should hear or see.
type EventKind int

const (
	EventClick EventKind = iota
	EventLine
	EventRocket
	EventStar
	EventBomb
	EventGravity
	EventDrop
	EventLevelUp
	EventGameOver
)

var eventNames = [...]string{
	EventClick:    "click",
	EventLine:     "line",
	EventRocket:   "rocket",
	EventStar:     "star",
	EventBomb:     "bomb",
	EventGravity:  "gravity",
	EventDrop:     "drop",
	EventLevelUp:  "level_up",
	EventGameOver: "game_over",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is emitted by the engine as the game progresses. Score is the
// points awarded by the event, if any.
type Event struct {
	Kind  EventKind
	Score int
	Chain int
	Level int
}

// Listener receives engine events. Notify is called from the game tick and
// must not block.
type Listener interface {
	Notify(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) { f(e) }

type nopListener struct{}

func (nopListener) Notify(Event) {}
