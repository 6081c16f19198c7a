package events

// EventType names something that happened to the sheet being edited
type EventType string

const (
	CharacterCreated   EventType = "character_created"
	CharacterLoaded    EventType = "character_loaded"
	CharacterImported  EventType = "character_imported"
	CharacterSaved     EventType = "character_saved"
	CharacterDeleted   EventType = "character_deleted"
	TransitionApplied  EventType = "transition_applied"
	TransitionRejected EventType = "transition_rejected"
)

// Priority levels for listener order; lower runs first
const (
	PriorityFirst   = 0
	PriorityDefault = 100
	PriorityLast    = 500
)

// Event is published after the change it describes. Op is the transition
// name ("equip_armor", "spend_gold") for transition events.
type Event struct {
	Type        EventType
	CharacterID string
	Op          string
	// Err is set on TransitionRejected
	Err error

	cancelled bool
}

func (e *Event) IsCancelled() bool { return e.cancelled }

// Cancel stops delivery to the remaining listeners
func (e *Event) Cancel() { e.cancelled = true }

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	Name  string
	Order int
	Fn    func(*Event) error
}

func (l *ListenerFunc) HandleEvent(e *Event) error { return l.Fn(e) }
func (l *ListenerFunc) Priority() int              { return l.Order }
func (l *ListenerFunc) ID() string                 { return l.Name }
