package tetris

// NoMargin marks a row or column of the bounding box with no occupied cell.
const NoMargin = -1

// Margins describes the occupied extent of an orientation.
//
// Left[r] and Right[r] are the first and last occupied column of row r;
// Bottom[c] is the last occupied row of column c. Empty rows and columns
// hold NoMargin in every array.
type Margins struct {
	Left   [ItemBlocks]int
	Right  [ItemBlocks]int
	Bottom [ItemBlocks]int
}

// ComputeMargins derives the margins of m.
func ComputeMargins(m *Matrix) Margins {
	var mg Margins
	for i := 0; i < ItemBlocks; i++ {
		mg.Left[i], mg.Right[i], mg.Bottom[i] = NoMargin, NoMargin, NoMargin

		for c := 0; c < ItemBlocks; c++ {
			if m.At(i, c) > 0 {
				mg.Left[i] = c
				break
			}
		}
		for c := ItemBlocks - 1; c >= 0; c-- {
			if m.At(i, c) > 0 {
				mg.Right[i] = c
				break
			}
		}
		for r := ItemBlocks - 1; r >= 0; r-- {
			if m.At(r, i) > 0 {
				mg.Bottom[i] = r
				break
			}
		}
	}
	return mg
}
