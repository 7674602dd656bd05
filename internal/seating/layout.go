// Package seating lays out bus seats and validates passenger seat choices.
package seating

import "strconv"

// SeatsPerRow is the number of seats across the bus aisle (A-D).
const SeatsPerRow = 4

var columns = [SeatsPerRow]byte{'A', 'B', 'C', 'D'}

// Layout returns the row-major seat labels of a bus with totalSeats seats:
// 1A 1B 1C 1D 2A ... truncated to totalSeats.
func Layout(totalSeats int) []string {
	if totalSeats <= 0 {
		return nil
	}

	labels := make([]string, 0, totalSeats)
	for i := 0; i < totalSeats; i++ {
		labels = append(labels, Label(i/SeatsPerRow, i%SeatsPerRow))
	}
	return labels
}

// Label formats a zero-based row and column.
func Label(row, col int) string {
	return strconv.Itoa(row+1) + string(columns[col])
}

// Index returns the zero-based layout position of label, or -1 when the label is malformed.
func Index(label string) int {
	if len(label) < 2 {
		return -1
	}

	row, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || row < 1 || label[0] == '0' || label[0] == '+' {
		return -1
	}

	col := -1
	for i, c := range columns {
		if label[len(label)-1] == c {
			col = i
			break
		}
	}
	if col < 0 {
		return -1
	}

	return (row-1)*SeatsPerRow + col
}

// Valid reports whether label exists on a bus with totalSeats seats.
func Valid(totalSeats int, label string) bool {
	idx := Index(label)
	return idx >= 0 && idx < totalSeats
}

// Rows groups a layout into rows of SeatsPerRow for display.
func Rows(layout []string) [][]string {
	var rows [][]string
	for start := 0; start < len(layout); start += SeatsPerRow {
		end := min(start+SeatsPerRow, len(layout))
		rows = append(rows, layout[start:end])
	}
	return rows
}
