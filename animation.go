package tabula

import (
	"context"
	"time"

	"github.com/looplab/fsm"
	"github.com/tanema/gween/ease"
)

// AnimationState is the lifecycle state of an animation descriptor.
type AnimationState string

// Lifecycle states. Finished is terminal; a descriptor is played at most
// once.
const (
	StatePending  AnimationState = "pending"
	StateRunning  AnimationState = "running"
	StateFinished AnimationState = "finished"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
)

// Animation is a declarative description of a timed visual transition.
// The set of variants is closed: MovementAnimation, RotationAnimation,
// ScaleAnimation, FadeAnimation, FlipAnimation, DiceAnimation,
// RandomizeAnimation, DelayAnimation, SequentialAnimation and
// ParallelAnimation.
type Animation interface {
	// Duration returns the total playback time.
	Duration() time.Duration
	// State returns the lifecycle state.
	State() AnimationState
	lifecycle() *animationBase
}

// animationBase carries the lifecycle shared by every descriptor.
type animationBase struct {
	// OnFinished runs once, after the animation has left the scene's
	// active set.
	OnFinished func()

	fsm *fsm.FSM
}

func newAnimationBase() animationBase {
	return animationBase{
		fsm: fsm.NewFSM(
			string(StatePending),
			fsm.Events{
				{Name: eventStart, Src: []string{string(StatePending)}, Dst: string(StateRunning)},
				{Name: eventFinish, Src: []string{string(StateRunning)}, Dst: string(StateFinished)},
			},
			fsm.Callbacks{},
		),
	}
}

func (a *animationBase) lifecycle() *animationBase { return a }

// State returns the lifecycle state.
func (a *animationBase) State() AnimationState {
	return AnimationState(a.fsm.Current())
}

func (a *animationBase) markRunning() {
	if err := a.fsm.Event(context.Background(), eventStart); err != nil {
		panic("tabula: animation start: " + err.Error())
	}
}

// finish marks the animation finished and runs OnFinished. It is a no-op
// when the animation is not running, so the callback fires at most once.
func (a *animationBase) finish() {
	if a.fsm.Event(context.Background(), eventFinish) != nil {
		return
	}
	if a.OnFinished != nil {
		a.OnFinished()
	}
}

// MovementAnimation moves a component from one position to another.
type MovementAnimation struct {
	animationBase
	Target   Component
	From, To Vec2
	Length   time.Duration
	Ease     ease.TweenFunc
}

// NewMovementAnimation creates a linear movement of target from from to to.
func NewMovementAnimation(target Component, from, to Vec2, d time.Duration) *MovementAnimation {
	return &MovementAnimation{animationBase: newAnimationBase(), Target: target, From: from, To: to, Length: d, Ease: ease.Linear}
}

// Duration returns the playback time.
func (a *MovementAnimation) Duration() time.Duration { return a.Length }

// RotationAnimation turns a component between two angles in degrees.
type RotationAnimation struct {
	animationBase
	Target   Component
	From, To float64
	Length   time.Duration
	Ease     ease.TweenFunc
}

// NewRotationAnimation creates a linear rotation of target.
func NewRotationAnimation(target Component, from, to float64, d time.Duration) *RotationAnimation {
	return &RotationAnimation{animationBase: newAnimationBase(), Target: target, From: from, To: to, Length: d, Ease: ease.Linear}
}

// Duration returns the playback time.
func (a *RotationAnimation) Duration() time.Duration { return a.Length }

// ScaleAnimation scales a component between two scale factors.
type ScaleAnimation struct {
	animationBase
	Target   Component
	From, To Vec2
	Length   time.Duration
	Ease     ease.TweenFunc
}

// NewScaleAnimation creates a linear scale of target.
func NewScaleAnimation(target Component, from, to Vec2, d time.Duration) *ScaleAnimation {
	return &ScaleAnimation{animationBase: newAnimationBase(), Target: target, From: from, To: to, Length: d, Ease: ease.Linear}
}

// Duration returns the playback time.
func (a *ScaleAnimation) Duration() time.Duration { return a.Length }

// FadeAnimation changes a component's opacity.
type FadeAnimation struct {
	animationBase
	Target   Component
	From, To float64
	Length   time.Duration
	Ease     ease.TweenFunc
}

// NewFadeAnimation creates a linear opacity change of target.
func NewFadeAnimation(target Component, from, to float64, d time.Duration) *FadeAnimation {
	return &FadeAnimation{animationBase: newAnimationBase(), Target: target, From: from, To: to, Length: d, Ease: ease.Linear}
}

// Duration returns the playback time.
func (a *FadeAnimation) Duration() time.Duration { return a.Length }

// FlipAnimation shrinks the target horizontally to nothing, swaps its
// visual to To and grows it back. Each half takes half the duration.
type FlipAnimation struct {
	animationBase
	Target Component
	To     Visual
	Length time.Duration
	Ease   ease.TweenFunc

	side *CardSide // set by NewCardFlip
}

// NewFlipAnimation flips target over to show to.
func NewFlipAnimation(target Component, to Visual, d time.Duration) *FlipAnimation {
	return &FlipAnimation{animationBase: newAnimationBase(), Target: target, To: to, Length: d, Ease: ease.Linear}
}

// NewCardFlip flips card to its other face. On completion the card's Side
// is updated.
func NewCardFlip(card *Card, d time.Duration) *FlipAnimation {
	side := CardFront
	if card.Side.Get() == CardFront {
		side = CardBack
	}
	a := NewFlipAnimation(card, card.visualFor(side), d)
	a.side = &side
	return a
}

// Duration returns the playback time.
func (a *FlipAnimation) Duration() time.Duration { return a.Length }

// DiceAnimation rolls a dice: it shows Speed random sides spread evenly
// over the duration and ends on Side.
type DiceAnimation struct {
	animationBase
	Target *Dice
	Side   int
	Length time.Duration
	Speed  int
}

// NewDiceAnimation rolls target to side with speed ticks.
func NewDiceAnimation(target *Dice, side int, d time.Duration, speed int) *DiceAnimation {
	return &DiceAnimation{animationBase: newAnimationBase(), Target: target, Side: side, Length: d, Speed: speed}
}

// Duration returns the playback time.
func (a *DiceAnimation) Duration() time.Duration { return a.Length }

// RandomizeAnimation shows Speed random picks from Visuals spread evenly
// over the duration and ends on To.
type RandomizeAnimation struct {
	animationBase
	Target  Component
	Visuals []Visual
	To      Visual
	Length  time.Duration
	Speed   int
}

// NewRandomizeAnimation shuffles target's appearance among visuals and
// settles on to.
func NewRandomizeAnimation(target Component, visuals []Visual, to Visual, d time.Duration, speed int) *RandomizeAnimation {
	return &RandomizeAnimation{animationBase: newAnimationBase(), Target: target, Visuals: visuals, To: to, Length: d, Speed: speed}
}

// Duration returns the playback time.
func (a *RandomizeAnimation) Duration() time.Duration { return a.Length }

// DelayAnimation waits. Use it inside a SequentialAnimation.
type DelayAnimation struct {
	animationBase
	Length time.Duration
}

// NewDelayAnimation waits for d.
func NewDelayAnimation(d time.Duration) *DelayAnimation {
	return &DelayAnimation{animationBase: newAnimationBase(), Length: d}
}

// Duration returns the wait time.
func (a *DelayAnimation) Duration() time.Duration { return a.Length }

// SequentialAnimation plays its children one after another.
type SequentialAnimation struct {
	animationBase
	Children []Animation
}

// NewSequentialAnimation chains children.
func NewSequentialAnimation(children ...Animation) *SequentialAnimation {
	return &SequentialAnimation{animationBase: newAnimationBase(), Children: children}
}

// Duration returns the sum of the children's durations.
func (a *SequentialAnimation) Duration() time.Duration {
	var d time.Duration
	for _, c := range a.Children {
		d += c.Duration()
	}
	return d
}

// ParallelAnimation plays its children together.
type ParallelAnimation struct {
	animationBase
	Children []Animation
}

// NewParallelAnimation bundles children.
func NewParallelAnimation(children ...Animation) *ParallelAnimation {
	return &ParallelAnimation{animationBase: newAnimationBase(), Children: children}
}

// Duration returns the longest child duration.
func (a *ParallelAnimation) Duration() time.Duration {
	var d time.Duration
	for _, c := range a.Children {
		d = max(d, c.Duration())
	}
	return d
}
