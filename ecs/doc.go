// Package ecs bridges tabula interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pointer, click, drag and drop event as
// an [InteractionEventType] event and links each interacting component to
// an entity carrying a [ComponentRef]:
//
//	world := donburi.NewWorld()
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
//	ecs.InteractionEventType.Subscribe(world, func(w donburi.World, e tabula.InteractionEvent) {
//		if e.Type == tabula.EventDrop {
//			// ...
//		}
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
