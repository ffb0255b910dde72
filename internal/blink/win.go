package blink

// Lines lists the eight winning triples: rows, then columns, then diagonals.
// The order matters: blocking moves are chosen from the first matching line.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// HasLine reports whether indices contain every cell of some winning triple.
// Pass the cells one seat currently owns, never the whole board.
func HasLine(indices []int) bool {
	_, ok := WinningLine(indices)
	return ok
}

// WinningLine returns the first triple fully contained in indices.
func WinningLine(indices []int) ([3]int, bool) {
	var owned [BoardCells]bool
	for _, i := range indices {
		if i >= 0 && i < BoardCells {
			owned[i] = true
		}
	}

	for _, line := range Lines {
		if owned[line[0]] && owned[line[1]] && owned[line[2]] {
			return line, true
		}
	}
	return [3]int{}, false
}
