package game

// EventKind says what changed.
type EventKind uint8

const (
	EventHealth EventKind = iota
	EventAmmo
	EventScore
	EventInventory
	EventWeapon
	EventPhase
	EventNightBurst
	EventShot
	EventKill
	EventDrop
	EventPickup
	EventCraft
	EventReload
	EventHeal
	EventGroan
	EventGameOver
)

var eventNames = [...]string{
	EventHealth:     "health",
	EventAmmo:       "ammo",
	EventScore:      "score",
	EventInventory:  "inventory",
	EventWeapon:     "weapon",
	EventPhase:      "phase",
	EventNightBurst: "night_burst",
	EventShot:       "shot",
	EventKill:       "kill",
	EventDrop:       "drop",
	EventPickup:     "pickup",
	EventCraft:      "craft",
	EventReload:     "reload",
	EventHeal:       "heal",
	EventGroan:      "groan",
	EventGameOver:   "game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a change notification for frontends. Value and Key carry the
// kind-specific payload: the new value for health, ammo and score, the
// day number for phase changes, the item, weapon, recipe or variant key
// where one applies.
type Event struct {
	Kind  EventKind `msgpack:"kind"`
	Tick  uint64    `msgpack:"tick"`
	Value float64   `msgpack:"value"`
	Key   string    `msgpack:"key,omitempty"`
	Pos   Vec2      `msgpack:"pos"`
}

// maxPendingEvents caps the undrained backlog; the oldest events are
// dropped first.
const maxPendingEvents = 4096

// eventLog is a ring once full: head is the oldest event and only moves
// after the backlog reaches maxPendingEvents.
type eventLog struct {
	events  []Event
	head    int
	dropped int
}

func (l *eventLog) push(e Event) {
	if len(l.events) < maxPendingEvents {
		l.events = append(l.events, e)
		return
	}
	l.events[l.head] = e
	l.head = (l.head + 1) % maxPendingEvents
	l.dropped++
}

func (l *eventLog) drain() []Event {
	if len(l.events) == 0 {
		return nil
	}
	out := make([]Event, 0, len(l.events))
	out = append(out, l.events[l.head:]...)
	out = append(out, l.events[:l.head]...)
	l.events = l.events[:0]
	l.head = 0
	return out
}
