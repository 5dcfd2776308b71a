package model

import "fmt"

// CardID is the stable identity of one of the 52 card entities.
// IDs are assigned once by NewBoardState and never change; the suit and rank
// behind an ID are reassigned on every shuffle.
type CardID int

// Suit is one of the four French suits.
type Suit int

const (
	Heart Suit = iota
	Diamond
	Club
	Spade
)

// Suits lists every suit in foundation slot order.
var Suits = [...]Suit{Heart, Diamond, Club, Spade}

func (s Suit) String() string {
	switch s {
	case Heart:
		return "heart"
	case Diamond:
		return "diamond"
	case Club:
		return "club"
	case Spade:
		return "spade"
	default:
		return fmt.Sprintf("suit(%d)", int(s))
	}
}

// Color is the card color used by the alternating-color tableau rule.
type Color int

const (
	Red Color = iota
	Black
)

// Color returns Red for hearts and diamonds, Black for clubs and spades.
func (s Suit) Color() Color {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

// Rank is the card value, 1 (Ace) through 13 (King).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Card is a card entity in the registry.
//
// Target is the authoritative logical placement; Pos is what is currently
// displayed and converges toward Target over animation ticks. Prev is the
// pre-drag snapshot used to send a rejected move back.
type Card struct {
	ID        CardID `json:"id"`
	Suit      Suit   `json:"suit"`
	Rank      Rank   `json:"rank"`
	Zone      Zone   `json:"zone"`
	Order     int    `json:"order"`
	FaceDown  bool   `json:"faceDown"`
	Clickable bool   `json:"clickable"`
	Dragging  bool   `json:"dragging"`
	Prev      Vec3   `json:"prev"`
	Target    Vec3   `json:"target"`
	Pos       Vec3   `json:"pos"`
	// Sprite is the image key last pushed by a sprite update request.
	Sprite string `json:"sprite"`
}

// Color is shorthand for c.Suit.Color().
func (c *Card) Color() Color {
	return c.Suit.Color()
}

// FaceKey returns the image key a renderer should draw for the card's
// current face state: "facedown" or "<suit>_<rank>" such as "heart_01".
func (c *Card) FaceKey() string {
	if c.FaceDown {
		return FaceDownKey
	}
	return fmt.Sprintf("%s_%02d", c.Suit, int(c.Rank))
}

// FaceDownKey is the image key for the card back.
const FaceDownKey = "facedown"

func (c *Card) String() string {
	return fmt.Sprintf("%s_%02d@%s#%d", c.Suit, int(c.Rank), c.Zone, c.Order)
}

// Difficulty selects how many cards a stock click draws.
type Difficulty int

const (
	Easy Difficulty = iota
	Hard
)

// DrawCount returns 1 for Easy and 3 for Hard.
func (d Difficulty) DrawCount() int {
	if d == Easy {
		return 1
	}
	return 3
}

func (d Difficulty) String() string {
	if d == Easy {
		return "easy"
	}
	return "hard"
}

// ParseDifficulty accepts "easy" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Button identifies the pointer button of an input gesture.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)
