package game

// Strip iteration over the four line directions. Win detection passes
// full=false and only visits the occupied part of the board; the heuristic
// passes full=true and visits every board-spanning strip so that nearly
// complete runs bordered by empty cells still count.

// cellAt treats positions above a column's height as empty.
func (b *Board) cellAt(col, row int) Cell {
	piece, err := b.GetPiece(col, row)
	if err != nil {
		return CellEmpty
	}
	return piece.Cell()
}

func (b *Board) scanHeight(full bool) int {
	if full {
		return Rows
	}
	return b.MaxHeight()
}

// horizontalStrips yields one strip per row, bottom row first.
func (b *Board) horizontalStrips(full bool) [][]Cell {
	height := b.scanHeight(full)
	strips := make([][]Cell, 0, height)
	for row := 0; row < height; row++ {
		strip := make([]Cell, Columns)
		for col := 0; col < Columns; col++ {
			strip[col] = b.cellAt(col, row)
		}
		strips = append(strips, strip)
	}
	return strips
}

// verticalStrips yields one strip per column, bottom cell first. Without
// full, empty columns are skipped and each strip stops at its column's
// height; with full, every column is scanned to the top.
func (b *Board) verticalStrips(full bool) [][]Cell {
	var strips [][]Cell
	for col := 0; col < Columns; col++ {
		height := b.Height(col)
		if full {
			height = Rows
		} else if height == 0 {
			continue
		}
		strip := make([]Cell, height)
		for row := 0; row < height; row++ {
			strip[row] = b.cellAt(col, row)
		}
		strips = append(strips, strip)
	}
	return strips
}

// upwardDiagonalStrips yields every diagonal running bottom-left to
// top-right with room for a winning run: first the diagonals leaving the
// left wall from the highest useful row down, then the diagonals leaving
// the bottom row from left to right.
func (b *Board) upwardDiagonalStrips(full bool) [][]Cell {
	height := b.scanHeight(full)
	startRow := max(height-WinLength, 0)
	var strips [][]Cell
	for row := startRow; row >= 1; row-- {
		strips = append(strips, b.upwardDiagonal(0, row, height))
	}
	for col := 0; col+WinLength <= Columns; col++ {
		strips = append(strips, b.upwardDiagonal(col, 0, height))
	}
	return strips
}

func (b *Board) upwardDiagonal(col, row, height int) []Cell {
	var strip []Cell
	for col < Columns && row < height {
		strip = append(strip, b.cellAt(col, row))
		col++
		row++
	}
	return strip
}

// downwardDiagonalStrips is the mirror of upwardDiagonalStrips: diagonals
// running bottom-right to top-left, walked leftward and upward.
func (b *Board) downwardDiagonalStrips(full bool) [][]Cell {
	height := b.scanHeight(full)
	startRow := max(height-WinLength, 0)
	var strips [][]Cell
	for row := startRow; row >= 1; row-- {
		strips = append(strips, b.downwardDiagonal(Columns, row, height))
	}
	for col := Columns; col >= WinLength; col-- {
		strips = append(strips, b.downwardDiagonal(col, 0, height))
	}
	return strips
}

func (b *Board) downwardDiagonal(col, row, height int) []Cell {
	var strip []Cell
	for col > 0 && row < height {
		col--
		strip = append(strip, b.cellAt(col, row))
		row++
	}
	return strip
}

// windowCounts slides a WinLength-wide window along a strip and yields the
// piece count of each color inside it, index 0 for PlayerOne and 1 for
// PlayerTwo. A strip shorter than the window still yields its one partial
// window.
func windowCounts(strip []Cell) [][2]int {
	var counts [2]int
	limit := min(len(strip), WinLength)
	for i := 0; i < limit; i++ {
		tally(&counts, strip[i], 1)
	}
	windows := [][2]int{counts}
	for i := WinLength; i < len(strip); i++ {
		tally(&counts, strip[i], 1)
		tally(&counts, strip[i-WinLength], -1)
		windows = append(windows, counts)
	}
	return windows
}

func tally(counts *[2]int, c Cell, delta int) {
	switch c {
	case CellOne:
		counts[0] += delta
	case CellTwo:
		counts[1] += delta
	}
}
