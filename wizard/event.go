package wizard

// EventKind is the type of inbound event the presentation layer delivers.
type EventKind int

const (
	EventStart EventKind = iota
	EventMenu
	EventServiceChoice
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMenu:
		return "menu"
	case EventServiceChoice:
		return "service_choice"
	case EventText:
		return "text"
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Value string
}

func Start() Event { return Event{Kind: EventStart} }

func Menu() Event { return Event{Kind: EventMenu} }

func ServiceChoice(tag string) Event { return Event{Kind: EventServiceChoice, Value: tag} }

func Text(text string) Event { return Event{Kind: EventText, Value: text} }
