package tabula

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction and drag-and-drop events are forwarded
// to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	Component Component
	// Target is the drop candidate for enter/exit/drop events.
	Target  Component
	X, Y    float64
	Button  MouseButton
	Success bool
}

// nodeBinding records the render nodes and listener handles created for
// one component.
type nodeBinding struct {
	node       *RenderNode // composite
	background *RenderNode
	content    *RenderNode
	overlay    *RenderNode // selection tint, toggle buttons only
	binds      bindings
}

// Scene is the top-level object that owns the root component list, the
// component to render node map, the active animation set and the drag
// state. All methods must be called from the UI goroutine.
type Scene struct {
	// Width and Height are the logical content size.
	Width, Height float64

	// ClearColor fills the screen before drawing.
	ClearColor Color

	// Locked blocks interaction. Locking while a drag is in flight rolls
	// the drag back.
	Locked *Property[bool]

	// ScreenshotDir receives PNGs queued with Screenshot. Empty means
	// DefaultScreenshotDir.
	ScreenshotDir string

	// ViewportWidth and ViewportHeight mirror the host window size. Setting
	// them asks the host to resize; sizes reported by the host are stored
	// silently.
	ViewportWidth  *Property[float64]
	ViewportHeight *Property[float64]

	root       *RenderNode
	rootLayer  *RenderNode
	dragLayer  *RenderNode
	components *Property[[]Component]

	nodes  map[Component]*nodeBinding
	owners map[*RenderNode]Component

	animations []Animation
	running    []*runningAnimation

	drag *dragState

	// Viewport
	hAlign     HorizontalAlignment
	vAlign     VerticalAlignment
	scaleMode  ScaleMode
	zoom       *Rect
	zoomAnim   *zoomAnim
	zoomTarget *Rect
	view       ViewTransform

	// Input state
	pointer      pointerState
	hitBuf       []*RenderNode
	dragDeadZone float64
	injectQueue  []pointerFrame
	keyBuf       []ebiten.Key
	script       *Script

	screenshotQueue []string

	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
	fps        *fpsOverlay

	window hostWindow
	rng    *rand.Rand
	logger *log.Logger
	debug  bool
	store  EntityStore
}

// NewScene creates an empty scene with the given logical content size.
func NewScene(width, height float64) *Scene {
	s := &Scene{
		Width:        width,
		Height:       height,
		ClearColor:   Color{0, 0, 0, 1},
		nodes:        make(map[Component]*nodeBinding),
		owners:       make(map[*RenderNode]Component),
		faces:        make(map[float64]*text.GoTextFace),
		dragDeadZone: defaultDragDeadZone,
		scaleMode:    ScaleFull,
		hAlign:       AlignHCenter,
		vAlign:       AlignVCenter,
		window:       ebitenWindow{},
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x7ab1a)),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix:          "tabula",
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
	}
	s.root = NewGroupNode("root")
	s.rootLayer = NewGroupNode("components")
	s.rootLayer.Interactable = true
	s.dragLayer = NewGroupNode("drag")
	s.root.AddChild(s.rootLayer)
	s.root.AddChild(s.dragLayer)

	s.components = NewProperty([]Component(nil))
	s.components.OnChange(func(old, next []Component) {
		s.syncChildren(s.rootLayer, old, next)
	})

	s.Locked = NewProperty(false)
	s.Locked.OnInternalChange(func(_, locked bool) {
		if locked && s.drag != nil {
			if err := s.CancelDrag(); err != nil {
				s.logger.Error("cancel drag on lock", "err", err)
			}
		}
	})

	s.ViewportWidth = NewProperty(width)
	s.ViewportHeight = NewProperty(height)
	s.ViewportWidth.OnChange(func(_, w float64) {
		s.window.SetSize(int(w), int(s.ViewportHeight.Get()))
		s.updateView()
	})
	s.ViewportHeight.OnChange(func(_, h float64) {
		s.window.SetSize(int(s.ViewportWidth.Get()), int(h))
		s.updateView()
	})
	s.updateView()
	return s
}

// Root returns the scene's root render node.
func (s *Scene) Root() *RenderNode {
	return s.root
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetLogger replaces the scene's logger.
func (s *Scene) SetLogger(l *log.Logger) {
	s.logger = l
	if s.debug {
		l.SetLevel(log.DebugLevel)
	}
}

// SetDebugMode enables or disables debug logging of drag, animation and
// rebuild activity.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
	} else {
		s.logger.SetLevel(log.InfoLevel)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetRand replaces the random source used by dice and randomize
// animations.
func (s *Scene) SetRand(r *rand.Rand) {
	s.rng = r
}

// SetDragDeadZone sets the minimum pointer movement in pixels before a
// press turns into a drag.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Root component list ---

// Components returns the root component list. The returned slice MUST NOT
// be mutated.
func (s *Scene) Components() []Component {
	return s.components.Get()
}

// AddComponents appends components to the root list, detaching each from
// its previous parent first, and builds their render nodes.
func (s *Scene) AddComponents(cs ...Component) error {
	for _, c := range cs {
		if err := validateTree(c); err != nil {
			return err
		}
	}
	for _, c := range cs {
		s.insertRoot(c, len(s.components.Get()))
	}
	return nil
}

// insertRoot places c at index in the root list. Panics if the index is
// out of range after c has been detached.
func (s *Scene) insertRoot(c Component, index int) {
	c.Base().RemoveFromParent()
	cur := s.components.Get()
	if index < 0 || index > len(cur) {
		panic("tabula: root index out of range")
	}
	next := make([]Component, 0, len(cur)+1)
	next = append(next, cur[:index]...)
	next = append(next, c)
	next = append(next, cur[index:]...)
	c.Base().scene = s
	s.components.Set(next)
}

// RemoveComponents removes components from the root list. Components that
// are not in the root list are ignored.
func (s *Scene) RemoveComponents(cs ...Component) {
	cur := s.components.Get()
	next := make([]Component, 0, len(cur))
	removed := false
	for _, c := range cur {
		drop := false
		for _, r := range cs {
			if c == r {
				drop = true
				break
			}
		}
		if drop {
			c.Base().scene = nil
			removed = true
			continue
		}
		next = append(next, c)
	}
	if removed {
		s.components.Set(next)
	}
}

// ClearComponents removes every root component.
func (s *Scene) ClearComponents() {
	s.RemoveComponents(s.components.Get()...)
}

// rootIndex returns the index of c in the root list, or -1.
func (s *Scene) rootIndex(c Component) int {
	for i, rc := range s.components.Get() {
		if rc == c {
			return i
		}
	}
	return -1
}

// --- Component <-> render node map ---

// NodeOf returns the render node built for c, or nil when c is not part of
// the render tree.
func (s *Scene) NodeOf(c Component) *RenderNode {
	if nb := s.nodes[c]; nb != nil {
		return nb.node
	}
	return nil
}

// ComponentOf returns the component owning n or its nearest owned ancestor
// node, or nil.
func (s *Scene) ComponentOf(n *RenderNode) Component {
	for p := n; p != nil; p = p.Parent {
		if c, ok := s.owners[p]; ok {
			return c
		}
	}
	return nil
}

// NumBound returns the number of components currently in the map.
func (s *Scene) NumBound() int {
	return len(s.nodes)
}

// --- Locking ---

// Lock blocks interaction.
func (s *Scene) Lock() { s.Locked.Set(true) }

// Unlock re-enables interaction.
func (s *Scene) Unlock() { s.Locked.Set(false) }

// IsLocked reports whether interaction is blocked.
func (s *Scene) IsLocked() bool { return s.Locked.Get() }

// --- Frame loop ---

// Update processes input and advances animations by one tick at the
// current TPS. It is called by the game loop installed by Run.
func (s *Scene) Update() {
	dt := time.Second / time.Duration(ebiten.TPS())
	if s.script != nil {
		s.script.step(s)
	}
	if !s.processInjectedInput() {
		s.processInput()
	}
	s.advance(dt)
}

// Tick steps the attached script, consumes one injected input event and
// advances animations by dt. Use it to drive a scene from a custom tick
// source or in tests.
func (s *Scene) Tick(dt time.Duration) {
	if s.script != nil {
		s.script.step(s)
	}
	s.processInjectedInput()
	s.advance(dt)
}

func (s *Scene) advance(dt time.Duration) {
	if s.fps != nil {
		s.fps.update(dt)
	}
	s.updateZoom(dt)
	s.advanceAnimations(dt)
	updateWorldTransform(s.root, identityAffine, 1.0, false)
}

func (s *Scene) emit(ev InteractionEvent) {
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}

// hostWindow abstracts the host window so tests can observe resize
// requests.
type hostWindow interface {
	SetSize(w, h int)
}

type ebitenWindow struct{}

func (ebitenWindow) SetSize(w, h int) {
	if w > 0 && h > 0 {
		ebiten.SetWindowSize(w, h)
	}
}
