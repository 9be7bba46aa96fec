package tabula

// Token is a game piece with a single visual.
type Token struct {
	ComponentBase
}

// NewToken creates a token at (x, y) with the given size and visual.
func NewToken(name string, x, y, w, h float64, v Visual) *Token {
	t := &Token{}
	t.init(t, name, x, y, w, h, v)
	return t
}

// CardSide selects which face of a card is shown.
type CardSide uint8

const (
	CardBack  CardSide = iota // back face
	CardFront                 // front face
)

// Card is a game piece with a front and a back. Its Visual follows Side.
type Card struct {
	ComponentBase
	Front Visual
	Back  Visual
	Side  *Property[CardSide]
}

// NewCard creates a card showing its back.
func NewCard(name string, x, y, w, h float64, front, back Visual) *Card {
	c := &Card{Front: front, Back: back}
	c.init(c, name, x, y, w, h, back)
	c.Side = NewProperty(CardBack)
	c.Side.OnInternalChange(func(_, side CardSide) {
		c.Visual.Set(c.visualFor(side))
	})
	return c
}

func (c *Card) visualFor(side CardSide) Visual {
	if side == CardFront {
		return c.Front
	}
	return c.Back
}

// ShowFront turns the card face up.
func (c *Card) ShowFront() { c.Side.Set(CardFront) }

// ShowBack turns the card face down.
func (c *Card) ShowBack() { c.Side.Set(CardBack) }

// Flip turns the card over.
func (c *Card) Flip() {
	if c.Side.Get() == CardFront {
		c.ShowBack()
	} else {
		c.ShowFront()
	}
}

// Dice is a game piece with one visual per side. Its Visual follows Side.
type Dice struct {
	ComponentBase
	Sides []Visual
	Side  *Property[int]
}

// NewDice creates a dice showing side 0.
func NewDice(name string, x, y, w, h float64, sides []Visual) *Dice {
	d := &Dice{Sides: sides}
	var first Visual
	if len(sides) > 0 {
		first = sides[0]
	}
	d.init(d, name, x, y, w, h, first)
	d.Side = NewProperty(0)
	d.Side.OnInternalChange(func(_, side int) {
		if side >= 0 && side < len(d.Sides) {
			d.Visual.Set(d.Sides[side])
		}
	})
	return d
}
