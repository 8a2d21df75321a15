package card

import (
	"fmt"
	"strings"
)

// Card packs a card into one byte: the high nibble is the suit
// (0:Spade, 1:Heart, 2:Club, 3:Diamond), the low nibble is the rank
// (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K).
type Card byte

var rankStrings = map[byte]string{
	1:  "A",
	10: "T",
	11: "J",
	12: "Q",
	13: "K",
}

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	if c == CardRear {
		return "Rear"
	}

	rank := c & 0x0F
	rankStr, ok := rankStrings[byte(rank)]
	if !ok {
		rankStr = fmt.Sprintf("%d", rank)
	}

	return fmt.Sprintf("%s%s", c.Suit(), rankStr)
}

// Rank returns the card's face value, 1-13 with A=1.
func (c Card) Rank() byte {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return byte(c & 0x0F)
}

func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

// HandRealVal returns the rank used for hand comparison: A ranks above
// K (14) instead of below 2 (1).
func (c Card) HandRealVal() int {
	r := int(c & 0x0F)
	if r == 1 {
		return 14
	}
	return r
}

var suitPrefixes = map[byte]Card{
	's': 0x00, 'S': 0x00,
	'h': 0x10, 'H': 0x10,
	'c': 0x20, 'C': 0x20,
	'd': 0x30, 'D': 0x30,
}

var rankValues = map[string]Card{
	"A": 0x01, "2": 0x02, "3": 0x03, "4": 0x04, "5": 0x05,
	"6": 0x06, "7": 0x07, "8": 0x08, "9": 0x09,
	"T": 0x0A, "10": 0x0A, "J": 0x0B, "Q": 0x0C, "K": 0x0D,
}

// ParseCard converts a two- or three-character card string ("As", "Td",
// "10h") into its packed Card value. The rank comes first, the suit
// letter last.
func ParseCard(cardStr string) (Card, error) {
	if len(cardStr) < 2 {
		return 0, fmt.Errorf("invalid card string: %s", cardStr)
	}

	suitChar := cardStr[len(cardStr)-1]
	suitBase, ok := suitPrefixes[suitChar]
	if !ok {
		return 0, fmt.Errorf("invalid suit: %c", suitChar)
	}

	rankStr := strings.ToUpper(cardStr[:len(cardStr)-1])
	rankVal, ok := rankValues[rankStr]
	if !ok {
		return 0, fmt.Errorf("invalid rank: %s", rankStr)
	}

	return suitBase + rankVal, nil
}
