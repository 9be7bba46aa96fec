// Package tabula is a retained-mode UI framework for tabletop and board
// games on top of [Ebitengine].
//
// Games describe their table as a tree of model components: containers
// ([Area], [Pane]), sparse [Grid]s, game pieces ([Token], [Card], [Dice])
// and widgets ([Label], [Button], [ToggleButton]). Every mutable attribute
// is a [Property]; the scene builds a render node per component and keeps
// it in sync through property listeners, so game code only ever touches
// the model.
//
// # Quick start
//
//	scene := tabula.NewScene(800, 600)
//	pile := tabula.NewArea("pile", 20, 20, 120, 160, tabula.ColorVisual{Color: felt})
//	card := tabula.NewCard("ace", 0, 0, 100, 140, aceFront, cardBack)
//	card.Draggable = true
//	pile.Add(card)
//	scene.AddComponents(pile)
//
//	tabula.Run(scene, tabula.RunConfig{Title: "Solitaire"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Layout] directly.
//
// # Drag and drop
//
// Components with Draggable set follow the pointer once it leaves a small
// dead zone. While dragged, a component lives in a drag layer above the
// table, rotated to match its former ancestors. Drop candidates under the
// pointer get OnDragGestureEntered and OnDragGestureExited; on release
// every candidate whose DropAcceptor returns true receives OnDragDropped.
// When nobody accepts, the component is put back exactly where it was.
//
// # Animations
//
// Animations are one-shot descriptors started with [Scene.Play]:
// movement, rotation, scale, fade, card flips, dice rolls, randomized
// visuals, delays, and sequential or parallel groups. Tweens are driven by
// [gween]. OnFinished runs exactly once, after the animation has left the
// active set.
//
// # Viewport
//
// The logical scene is fitted into the window according to the scale mode
// and alignment, and [Scene.ZoomTo] can focus a detail rectangle.
// Configuration can be loaded from TOML with [LoadConfig].
//
// # Text
//
// [TextVisual] is drawn with Ebitengine's text/v2 package using Go Regular.
// [Scene.SetFontSource] swaps in another font loaded with [LoadFontSource].
//
// # Scripts and screenshots
//
// A [Script] replays clicks, drags, waits and lock changes from a TOML
// file through the synthetic input queue, and [Scene.Screenshot] saves the
// next finished frame as a PNG. Together they automate visual checks:
//
//	[[step]]
//	action = "drag"
//	from_x = 60
//	from_y = 80
//	to_x = 300
//	to_y = 80
//	frames = 10
//
//	[[step]]
//	action = "screenshot"
//	label = "after drop"
//
// # ECS integration
//
// The ecs subpackage forwards interaction events to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package tabula
