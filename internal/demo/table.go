// Package demo builds the sample card table shown by tabula-demo.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/tabula"
)

const (
	cardW    = 80.0
	cardH    = 112.0
	fanStep  = 24.0
	slotGap  = 12.0
	numPiles = 4
	numSlots = 4

	flipTime = 300 * time.Millisecond
	rollTime = 600 * time.Millisecond
	zoomTime = 400 * time.Millisecond
)

var (
	felt      = tabula.Color{R: 0.12, G: 0.34, B: 0.19, A: 1}
	slotColor = tabula.Color{R: 0.09, G: 0.26, B: 0.14, A: 1}
	ivory     = tabula.Color{R: 0.98, G: 0.96, B: 0.9, A: 1}
	cardBlue  = tabula.Color{R: 0.2, G: 0.3, B: 0.7, A: 1}
	buttonBg  = tabula.Color{R: 0.85, G: 0.85, B: 0.8, A: 1}
	red       = tabula.Color{R: 0.75, G: 0.1, B: 0.1, A: 1}
	black     = tabula.Color{A: 1}

	suits = []string{"S", "H", "D", "C"}
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// Table holds the components of the demo table.
type Table struct {
	Scene       *tabula.Scene
	Foundations *tabula.Grid
	Piles       []*tabula.Area
	Dice        *tabula.Dice
	Status      *tabula.Label

	logger *log.Logger
	rng    *rand.Rand
}

// Build populates scene with a tableau of face-down cards, a row of
// foundation slots, a dice with a roll button and a zoom toggle.
func Build(scene *tabula.Scene, logger *log.Logger, seed uint64) (*Table, error) {
	t := &Table{
		Scene:  scene,
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	width := scene.Width

	board := tabula.NewArea("board", 0, 0, width, scene.Height, tabula.ColorVisual{Color: felt})

	t.Foundations = tabula.NewGrid("foundations", 20, 20, numSlots, 1, nil)
	t.Foundations.SetSpacing(slotGap)
	for col := range numSlots {
		t.Foundations.SetColumnWidth(col, cardW)
		slot := tabula.NewArea(fmt.Sprintf("slot-%d", col), 0, 0, cardW, cardH, tabula.ColorVisual{Color: slotColor})
		slot.DropAcceptor = func(ev tabula.DragEvent) bool {
			_, ok := ev.Dragged.(*tabula.Card)
			return ok && slot.Len() == 0
		}
		slot.OnDragDropped = func(ev tabula.DragEvent) {
			t.settle(ev.Dragged, slot, 0)
		}
		t.Foundations.Set(col, 0, slot)
	}
	t.Foundations.SetRowHeight(0, cardH)
	board.Add(t.Foundations)

	deck := t.shuffledDeck()
	for i := range numPiles {
		pile := tabula.NewArea(fmt.Sprintf("pile-%d", i), 20+float64(i)*(cardW+slotGap), 180, cardW, cardH+fanStep*6, nil)
		pile.DropAcceptor = func(ev tabula.DragEvent) bool {
			_, ok := ev.Dragged.(*tabula.Card)
			return ok
		}
		pile.OnDragDropped = func(ev tabula.DragEvent) {
			t.settle(ev.Dragged, pile, float64(pile.Len())*fanStep)
		}
		for j := 0; j <= i+2; j++ {
			card := deck[0]
			deck = deck[1:]
			card.SetPosition(0, float64(j)*fanStep)
			pile.Add(card)
		}
		t.Piles = append(t.Piles, pile)
		board.Add(pile)
	}

	t.Dice = tabula.NewDice("dice", width-120, 40, 64, 64, diceFaces())
	roll := tabula.NewButton("roll", width-140, 120, 104, 32, "Roll", tabula.ColorVisual{Color: buttonBg})
	roll.OnAction = t.roll

	overview := tabula.NewToggleButton("overview", width-140, 180, 104, 32, "Table", tabula.ColorVisual{Color: buttonBg})
	detail := tabula.NewToggleButton("detail", width-140, 220, 104, 32, "Slots", tabula.ColorVisual{Color: buttonBg})
	tabula.NewToggleGroup(overview, detail)
	overview.Selected.Set(true)
	overview.OnAction = func() { t.zoom(overview, nil) }
	detail.OnAction = func() {
		r := tabula.Rect{X: 0, Y: 0, Width: numSlots * (cardW + slotGap) + 40, Height: cardH + 40}
		t.zoom(detail, &r)
	}

	lock := tabula.NewToggleButton("lock", width-140, 280, 104, 32, "Lock", tabula.ColorVisual{Color: buttonBg})
	lock.OnAction = func() { scene.Locked.Set(lock.Selected.Get()) }
	scene.Locked.OnChange(func(_, locked bool) {
		if locked {
			t.Status.Text.Set("Table locked")
		} else {
			t.Status.Text.Set("Drag cards onto the slots")
		}
	})

	t.Status = tabula.NewLabel("status", 20, scene.Height-40, width-40, 24, "Drag cards onto the slots")
	t.Status.TextColor.Set(ivory)
	t.Status.Alignment.Set(tabula.Alignment{Horizontal: tabula.AlignLeft, Vertical: tabula.AlignVCenter})

	board.Add(t.Dice, roll, overview, detail, lock, t.Status)
	if err := scene.AddComponents(board); err != nil {
		return nil, err
	}
	logger.Debug("demo table built", "piles", len(t.Piles), "slots", numSlots)
	return t, nil
}

// shuffledDeck creates face-down cards with click-to-flip behavior.
func (t *Table) shuffledDeck() []*tabula.Card {
	var deck []*tabula.Card
	for _, suit := range suits {
		for _, rank := range ranks {
			deck = append(deck, t.newCard(rank, suit))
		}
	}
	t.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func (t *Table) newCard(rank, suit string) *tabula.Card {
	ink := black
	if suit == "H" || suit == "D" {
		ink = red
	}
	front := tabula.NewCompoundVisual(
		tabula.ColorVisual{Color: ivory},
		tabula.TextVisual{Text: rank + suit, Color: ink, Size: 24, Alignment: tabula.AlignCenter},
	)
	back := tabula.ColorVisual{Color: cardBlue}
	card := tabula.NewCard(rank+suit, 0, 0, cardW, cardH, front, back)
	card.OnMouseClicked = func(ev tabula.MouseEvent) {
		if card.Side.Get() == tabula.CardFront || len(t.Scene.ActiveAnimations()) > 0 {
			return
		}
		flip := tabula.NewCardFlip(card, flipTime)
		flip.OnFinished = func() { card.Draggable = true }
		if err := t.Scene.Play(flip); err != nil {
			t.logger.Error("flip", "card", card.Name, "err", err)
		}
	}
	card.OnDragGestureEnded = func(ev tabula.DropEvent, ok bool) {
		if !ok {
			t.Status.Text.Set(card.Name + " returned")
		}
	}
	return card
}

// settle moves a dropped component into dst at the given offset.
func (t *Table) settle(c tabula.Component, dst *tabula.Area, y float64) {
	c.Base().SetPosition(0, y)
	c.Base().Rotation.Set(0)
	dst.Add(c)
	t.Status.Text.Set(fmt.Sprintf("%s moved to %s", c.Base().Name, dst.Name))
}

func (t *Table) roll() {
	side := t.rng.IntN(len(t.Dice.Sides))
	anim := tabula.NewDiceAnimation(t.Dice, side, rollTime, 10)
	anim.OnFinished = func() {
		t.Status.Text.Set(fmt.Sprintf("Rolled %d", side+1))
	}
	if err := t.Scene.Play(anim); err != nil {
		t.logger.Error("roll", "err", err)
	}
}

func (t *Table) zoom(b *tabula.ToggleButton, r *tabula.Rect) {
	// A click on the selected button deselects it; keep one view selected.
	if !b.Selected.Get() {
		b.Selected.Set(true)
	}
	if r == nil {
		t.Scene.ResetZoom()
		return
	}
	if err := t.Scene.ZoomTo(*r, zoomTime, ease.OutCubic); err != nil {
		t.logger.Error("zoom", "err", err)
	}
}

func diceFaces() []tabula.Visual {
	faces := make([]tabula.Visual, 6)
	for i := range faces {
		faces[i] = tabula.NewCompoundVisual(
			tabula.ColorVisual{Color: ivory},
			tabula.TextVisual{Text: fmt.Sprint(i + 1), Color: black, Size: 32, Alignment: tabula.AlignCenter},
		)
	}
	return faces
}
