package tabula

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transition is the live, playable form of an animation descriptor.
type transition interface {
	// begin marks the descriptor running and force-sets the start state.
	begin()
	// advance moves playback forward by dt seconds. Once the end state has
	// been applied it reports done and the part of dt left over.
	advance(dt float32) (leftover float32, done bool)
	animation() Animation
}

type runningAnimation struct {
	anim Animation
	tr   transition
}

// Play validates a, builds its transition, force-sets the start state and
// adds it to the active set. Playback advances on every Update or Tick.
//
// Play fails with ErrAnimationReused when a or one of its children has
// already been played and with ErrNotInScene when a target has no render
// node. Nothing is started in either case.
func (s *Scene) Play(a Animation) error {
	if err := s.checkAnimation(a, map[Animation]bool{}); err != nil {
		return err
	}
	tr := s.buildTransition(a)
	s.animations = append(s.animations, a)
	s.running = append(s.running, &runningAnimation{anim: a, tr: tr})
	tr.begin()
	s.logger.Debug("animation started", "kind", fmt.Sprintf("%T", a), "duration", a.Duration())
	return nil
}

// ActiveAnimations returns the animations currently playing.
func (s *Scene) ActiveAnimations() []Animation {
	return slices.Clone(s.animations)
}

// IsAnimating reports whether a is in the active set.
func (s *Scene) IsAnimating(a Animation) bool {
	return slices.Contains(s.animations, a)
}

// checkAnimation validates a and its children. seen collects the
// descriptors visited so far; one appearing twice in the same tree counts
// as reused.
func (s *Scene) checkAnimation(a Animation, seen map[Animation]bool) error {
	if a == nil {
		return fmt.Errorf("%w: nil animation", ErrPrecondition)
	}
	if a.State() != StatePending {
		return ErrAnimationReused
	}
	if seen[a] {
		return fmt.Errorf("%w: %T appears twice", ErrAnimationReused, a)
	}
	seen[a] = true
	var target Component
	switch v := a.(type) {
	case *MovementAnimation:
		target = v.Target
	case *RotationAnimation:
		target = v.Target
	case *ScaleAnimation:
		target = v.Target
	case *FadeAnimation:
		target = v.Target
	case *FlipAnimation:
		target = v.Target
	case *DiceAnimation:
		if v.Target == nil {
			return fmt.Errorf("%w: dice animation without target", ErrPrecondition)
		}
		if v.Side < 0 || v.Side >= len(v.Target.Sides) {
			return fmt.Errorf("%w: dice side %d out of range [0, %d)", ErrPrecondition, v.Side, len(v.Target.Sides))
		}
		target = v.Target
	case *RandomizeAnimation:
		target = v.Target
	case *DelayAnimation:
		return nil
	case *SequentialAnimation:
		return s.checkChildren(v.Children, seen)
	case *ParallelAnimation:
		return s.checkChildren(v.Children, seen)
	default:
		return fmt.Errorf("%w: unknown animation %T", ErrIllegalStructuralRole, a)
	}
	if target == nil || s.nodes[target] == nil {
		return fmt.Errorf("%w: animation target %v", ErrNotInScene, componentName(target))
	}
	return nil
}

func (s *Scene) checkChildren(children []Animation, seen map[Animation]bool) error {
	for _, c := range children {
		if err := s.checkAnimation(c, seen); err != nil {
			return err
		}
	}
	return nil
}

func componentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q", c.Base().Name)
}

// buildTransition assumes a passed checkAnimation.
func (s *Scene) buildTransition(a Animation) transition {
	switch v := a.(type) {
	case *MovementAnimation:
		node := s.nodes[v.Target].node
		b := v.Target.Base()
		return newTween(v, v.Length, v.Ease,
			[]float64{v.From.X, v.From.Y}, []float64{v.To.X, v.To.Y},
			func(x []float64) { node.SetPosition(x[0], x[1]) },
			func() { b.SetPosition(v.To.X, v.To.Y) })
	case *RotationAnimation:
		node := s.nodes[v.Target].node
		b := v.Target.Base()
		return newTween(v, v.Length, v.Ease,
			[]float64{v.From}, []float64{v.To},
			func(x []float64) { node.SetRotation(x[0]) },
			func() { b.Rotation.Set(v.To) })
	case *ScaleAnimation:
		node := s.nodes[v.Target].node
		b := v.Target.Base()
		return newTween(v, v.Length, v.Ease,
			[]float64{v.From.X, v.From.Y}, []float64{v.To.X, v.To.Y},
			func(x []float64) { node.SetScale(x[0], x[1]) },
			func() { b.SetScale(v.To.X, v.To.Y) })
	case *FadeAnimation:
		node := s.nodes[v.Target].node
		b := v.Target.Base()
		return newTween(v, v.Length, v.Ease,
			[]float64{v.From}, []float64{v.To},
			func(x []float64) { node.SetAlpha(x[0]) },
			func() { b.Opacity.Set(v.To) })
	case *FlipAnimation:
		return s.buildFlip(v)
	case *DiceAnimation:
		d := v.Target
		return &shuffleTransition{
			anim:     v,
			length:   v.Length,
			speed:    v.Speed,
			options:  d.Sides,
			rng:      s.rng,
			node:     s.nodes[d].background,
			final:    sideVisual(d, v.Side),
			complete: func() { d.Side.Set(v.Side) },
		}
	case *RandomizeAnimation:
		b := v.Target.Base()
		return &shuffleTransition{
			anim:     v,
			length:   v.Length,
			speed:    v.Speed,
			options:  v.Visuals,
			rng:      s.rng,
			node:     s.nodes[v.Target].background,
			final:    v.To,
			complete: func() { b.Visual.Set(v.To) },
		}
	case *DelayAnimation:
		return &delayTransition{anim: v, length: seconds(v.Length)}
	case *SequentialAnimation:
		seq := &sequenceTransition{anim: v}
		for _, c := range v.Children {
			seq.children = append(seq.children, s.buildTransition(c))
		}
		return seq
	case *ParallelAnimation:
		par := &parallelTransition{anim: v}
		for _, c := range v.Children {
			par.children = append(par.children, s.buildTransition(c))
		}
		return par
	}
	panic(fmt.Sprintf("tabula: unknown animation %T", a))
}

func sideVisual(d *Dice, side int) Visual {
	if side >= 0 && side < len(d.Sides) {
		return d.Sides[side]
	}
	return nil
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// advanceAnimations steps every running animation by dt and completes the
// ones that reached their end.
func (s *Scene) advanceAnimations(dt time.Duration) {
	if len(s.running) == 0 {
		return
	}
	step := seconds(dt)
	for _, r := range slices.Clone(s.running) {
		if _, done := r.tr.advance(step); done {
			s.completeAnimation(r)
		}
	}
}

// completeAnimation removes r from the active set before marking it
// finished, so OnFinished never observes it as active.
func (s *Scene) completeAnimation(r *runningAnimation) {
	s.running = slices.DeleteFunc(s.running, func(x *runningAnimation) bool { return x == r })
	s.animations = slices.DeleteFunc(s.animations, func(a Animation) bool { return a == r.anim })
	s.logger.Debug("animation finished", "kind", fmt.Sprintf("%T", r.anim))
	r.anim.lifecycle().finish()
}

// --- Tween ---

// tweenTransition interpolates up to a few float values with gween.
type tweenTransition struct {
	anim     Animation
	length   float32
	elapsed  float32
	from, to []float64
	tweens   []*gween.Tween
	values   []float64
	apply    func([]float64)
	commit   func()
}

func newTween(a Animation, d time.Duration, fn ease.TweenFunc, from, to []float64, apply func([]float64), commit func()) *tweenTransition {
	if fn == nil {
		fn = ease.Linear
	}
	t := &tweenTransition{
		anim:   a,
		length: seconds(d),
		from:   from,
		to:     to,
		values: make([]float64, len(from)),
		apply:  apply,
		commit: commit,
	}
	for i := range from {
		t.tweens = append(t.tweens, gween.New(float32(from[i]), float32(to[i]), t.length, fn))
	}
	return t
}

func (t *tweenTransition) animation() Animation { return t.anim }

func (t *tweenTransition) begin() {
	t.anim.lifecycle().markRunning()
	t.apply(t.from)
}

func (t *tweenTransition) advance(dt float32) (float32, bool) {
	t.elapsed += dt
	if t.elapsed >= t.length {
		t.apply(t.to)
		t.commit()
		return t.elapsed - t.length, true
	}
	for i, tw := range t.tweens {
		v, _ := tw.Update(dt)
		t.values[i] = float64(v)
	}
	t.apply(t.values)
	return 0, false
}

// --- Flip ---

// flipTransition plays the two halves of a flip back to back.
type flipTransition struct {
	anim    *FlipAnimation
	node    *RenderNode
	bg      *RenderNode
	half    float32
	elapsed float32
	scaleX  float64
	shrink  *gween.Tween
	grow    *gween.Tween
	swapped bool
	commit  func()
}

func (s *Scene) buildFlip(a *FlipAnimation) *flipTransition {
	nb := s.nodes[a.Target]
	b := a.Target.Base()
	fn := a.Ease
	if fn == nil {
		fn = ease.Linear
	}
	half := seconds(a.Length) / 2
	sx := b.ScaleX.Get()
	commit := func() { b.Visual.Set(a.To) }
	if card, ok := a.Target.(*Card); ok && a.side != nil {
		side := *a.side
		commit = func() { card.Side.Set(side) }
	}
	return &flipTransition{
		anim:   a,
		node:   nb.node,
		bg:     nb.background,
		half:   half,
		scaleX: sx,
		shrink: gween.New(float32(sx), 0, half, fn),
		grow:   gween.New(0, float32(sx), half, fn),
		commit: commit,
	}
}

func (t *flipTransition) animation() Animation { return t.anim }

func (t *flipTransition) begin() {
	t.anim.markRunning()
	t.node.SetScale(t.scaleX, t.node.ScaleY)
}

func (t *flipTransition) advance(dt float32) (float32, bool) {
	t.elapsed += dt
	if t.elapsed >= 2*t.half {
		t.swap()
		t.node.SetScale(t.scaleX, t.node.ScaleY)
		t.commit()
		return t.elapsed - 2*t.half, true
	}
	if t.elapsed < t.half {
		v, _ := t.shrink.Update(dt)
		t.node.SetScale(float64(v), t.node.ScaleY)
		return 0, false
	}
	if !t.swapped {
		t.swap()
		// carry the part of dt past the midpoint into the second half
		dt = t.elapsed - t.half
	}
	v, _ := t.grow.Update(dt)
	t.node.SetScale(float64(v), t.node.ScaleY)
	return 0, false
}

func (t *flipTransition) swap() {
	if t.swapped {
		return
	}
	t.swapped = true
	t.bg.Visual = t.anim.To
}

// --- Dice / randomize ---

// randSource is the subset of *rand.Rand used for shuffling.
type randSource interface {
	IntN(n int) int
}

// shuffleTransition substitutes a random option every length/speed seconds
// and forces final on completion.
type shuffleTransition struct {
	anim     Animation
	length   time.Duration
	speed    int
	options  []Visual
	rng      randSource
	node     *RenderNode
	final    Visual
	complete func()

	elapsed float32
	ticks   int
	current int
}

func (t *shuffleTransition) animation() Animation { return t.anim }

func (t *shuffleTransition) begin() {
	t.anim.lifecycle().markRunning()
	t.current = -1
}

func (t *shuffleTransition) interval() float32 {
	if t.speed <= 0 {
		return seconds(t.length)
	}
	return seconds(t.length) / float32(t.speed)
}

func (t *shuffleTransition) advance(dt float32) (float32, bool) {
	t.elapsed += dt
	length := seconds(t.length)
	if t.elapsed >= length {
		t.ticks = max(t.speed, 1)
		t.node.Visual = t.final
		t.complete()
		return t.elapsed - length, true
	}
	step := t.interval()
	due := int(math.Floor(float64(t.elapsed / step)))
	for t.ticks < due {
		t.ticks++
		t.shuffle()
	}
	return 0, false
}

// shuffle shows a random option different from the one shown last.
func (t *shuffleTransition) shuffle() {
	n := len(t.options)
	if n == 0 {
		return
	}
	i := t.rng.IntN(n)
	if n > 1 && i == t.current {
		i = (i + 1 + t.rng.IntN(n-1)) % n
	}
	t.current = i
	t.node.Visual = t.options[i]
}

// --- Delay ---

type delayTransition struct {
	anim    *DelayAnimation
	length  float32
	elapsed float32
}

func (t *delayTransition) animation() Animation { return t.anim }

func (t *delayTransition) begin() { t.anim.markRunning() }

func (t *delayTransition) advance(dt float32) (float32, bool) {
	t.elapsed += dt
	if t.elapsed >= t.length {
		return t.elapsed - t.length, true
	}
	return 0, false
}

// --- Composites ---

// sequenceTransition runs its children in order. Time left over when a
// child ends carries into the next one.
type sequenceTransition struct {
	anim     *SequentialAnimation
	children []transition
	index    int
}

func (t *sequenceTransition) animation() Animation { return t.anim }

func (t *sequenceTransition) begin() {
	t.anim.markRunning()
	if len(t.children) > 0 {
		t.children[0].begin()
	}
}

func (t *sequenceTransition) advance(dt float32) (float32, bool) {
	for t.index < len(t.children) {
		child := t.children[t.index]
		leftover, done := child.advance(dt)
		if !done {
			return 0, false
		}
		child.animation().lifecycle().finish()
		t.index++
		if t.index < len(t.children) {
			t.children[t.index].begin()
		}
		dt = leftover
	}
	return dt, true
}

// parallelTransition runs its children together and ends with the last.
type parallelTransition struct {
	anim     *ParallelAnimation
	children []transition
	done     []bool
}

func (t *parallelTransition) animation() Animation { return t.anim }

func (t *parallelTransition) begin() {
	t.anim.markRunning()
	t.done = make([]bool, len(t.children))
	for _, c := range t.children {
		c.begin()
	}
}

func (t *parallelTransition) advance(dt float32) (float32, bool) {
	all := true
	leftover := dt
	for i, c := range t.children {
		if t.done[i] {
			continue
		}
		rest, done := c.advance(dt)
		if !done {
			all = false
			continue
		}
		t.done[i] = true
		leftover = min(leftover, rest)
		c.animation().lifecycle().finish()
	}
	if !all {
		return 0, false
	}
	return leftover, true
}
