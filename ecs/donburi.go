package ecs

import (
	"github.com/phanxgames/tabula"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for tabula interaction
// events. Subscribe to it in ECS systems to receive pointer and drag events.
var InteractionEventType = events.NewEventType[tabula.InteractionEvent]()

// ComponentRef links an entity to the tabula component it stands for.
type ComponentRef struct {
	Component tabula.Component
}

// ComponentRefType is the Donburi component type holding a ComponentRef.
var ComponentRefType = donburi.NewComponentType[ComponentRef]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[tabula.Component]donburi.Entity
}

var _ tabula.EntityStore = (*DonburiStore)(nil)

// NewDonburiStore creates an EntityStore backed by world. Interaction
// events are published to InteractionEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[tabula.Component]donburi.Entity),
	}
}

// EmitEvent links the event's component and drop target to entities and
// publishes the event.
func (s *DonburiStore) EmitEvent(event tabula.InteractionEvent) {
	if event.Component != nil {
		s.Entity(event.Component)
	}
	if event.Target != nil {
		s.Entity(event.Target)
	}
	InteractionEventType.Publish(s.world, event)
}

// Entity returns the entity linked to c, creating it on first use.
func (s *DonburiStore) Entity(c tabula.Component) donburi.Entity {
	if e, ok := s.entities[c]; ok && s.world.Valid(e) {
		return e
	}
	e := s.world.Create(ComponentRefType)
	ComponentRefType.SetValue(s.world.Entry(e), ComponentRef{Component: c})
	s.entities[c] = e
	return e
}

// Lookup returns the entity linked to c without creating one.
func (s *DonburiStore) Lookup(c tabula.Component) (donburi.Entity, bool) {
	e, ok := s.entities[c]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// Forget removes the entity linked to c, if any.
func (s *DonburiStore) Forget(c tabula.Component) {
	e, ok := s.entities[c]
	if !ok {
		return
	}
	delete(s.entities, c)
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// ComponentOf returns the tabula component linked to entry, or nil.
func ComponentOf(entry *donburi.Entry) tabula.Component {
	if !entry.HasComponent(ComponentRefType) {
		return nil
	}
	return ComponentRefType.Get(entry).Component
}
