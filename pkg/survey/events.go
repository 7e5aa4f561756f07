package survey

// EventType defines the category of a structural change.
type EventType string

const (
	EventPageAdded       EventType = "page_added"
	EventPageRemoved     EventType = "page_removed"
	EventElementAdded    EventType = "element_added"
	EventElementRemoved  EventType = "element_removed"
	EventCollectionAdded EventType = "collection_added"
	// EventCollectionRemoved covers triggers, calculated values and html conditions.
	EventCollectionRemoved EventType = "collection_removed"
	EventRenamed           EventType = "renamed"
)

// Event describes one structural change of a document.
type Event struct {
	Type EventType
	Node Node
	// OldName and NewName are only set for EventRenamed.
	OldName string
	NewName string
}

// Structural reports whether the event adds or removes nodes.
func (e Event) Structural() bool {
	return e.Type != EventRenamed
}

type subscriber struct {
	id int
	fn func(Event)
}

// observers is an add/remove-only fan-out list.
type observers struct {
	next int
	subs []subscriber
}

func (o *observers) add(fn func(Event)) func() {
	o.next++
	id := o.next
	o.subs = append(o.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) emit(e Event) {
	// Snapshot so a subscriber may unsubscribe while being notified.
	subs := append([]subscriber(nil), o.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}
