package shogi

// Hand holds the captured pieces of one player, counted per base kind.
// Only the seven droppable kinds (pawn through rook) can be held.
type Hand struct {
	counts [Rook + 1]uint8
}

// handCaps are the physical piece counts of a shogi set per kind.
var handCaps = [Rook + 1]uint8{
	Pawn:   18,
	Lance:  4,
	Knight: 4,
	Silver: 4,
	Gold:   4,
	Bishop: 2,
	Rook:   2,
}

// Count returns the number of pieces of kind k in the hand. It is 0 for
// kinds that cannot be held.
func (h *Hand) Count(k PieceKind) int {
	if !k.IsDroppable() {
		return 0
	}
	return int(h.counts[k])
}

// Add puts one piece of kind k into the hand. It reports failure, and
// leaves the hand untouched, when k cannot be held or the physical cap
// for the kind is already reached.
func (h *Hand) Add(k PieceKind) bool {
	if !k.IsDroppable() || h.counts[k] >= handCaps[k] {
		return false
	}
	h.counts[k]++
	return true
}

// Remove takes one piece of kind k out of the hand. It reports failure,
// and leaves the hand untouched, when no such piece is held.
func (h *Hand) Remove(k PieceKind) bool {
	if !k.IsDroppable() || h.counts[k] == 0 {
		return false
	}
	h.counts[k]--
	return true
}

// IsEmpty reports whether the hand holds no pieces.
func (h *Hand) IsEmpty() bool {
	for k := Pawn; k <= Rook; k++ {
		if h.counts[k] != 0 {
			return false
		}
	}
	return true
}
