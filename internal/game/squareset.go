package game

import "math/bits"

// SquareSet is a set of grid indices. The padded grid has 120 cells so
// two words are needed.
type SquareSet [2]uint64

func SquareSetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

func (s SquareSet) Empty() bool { return s[0] == 0 && s[1] == 0 }

func (s SquareSet) Has(sq Square) bool {
	if sq < 0 || sq >= 128 {
		return false
	}
	return s[sq>>6]&(1<<(uint(sq)&63)) != 0
}

func (s SquareSet) Add(sq Square) SquareSet {
	if sq < 0 || sq >= 128 {
		return s
	}
	s[sq>>6] |= 1 << (uint(sq) & 63)
	return s
}

func (s SquareSet) Len() int { return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) }

// PopLSB returns the lowest square in the set and the set without it.
func (s SquareSet) PopLSB() (Square, SquareSet) {
	for w := 0; w < 2; w++ {
		if s[w] == 0 {
			continue
		}
		idx := bits.TrailingZeros64(s[w])
		s[w] &= s[w] - 1
		return Square(w*64 + idx), s
	}
	return 0, s
}

func (s SquareSet) Iter(fn func(Square)) {
	rest := s
	for !rest.Empty() {
		var sq Square
		sq, rest = rest.PopLSB()
		fn(sq)
	}
}

// Squares lists the set in ascending grid order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	s.Iter(func(sq Square) { out = append(out, sq) })
	return out
}
