package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	assert.Equal(t, []string{"1A", "1B", "1C", "1D", "2A", "2B"}, Layout(6))
	assert.Len(t, Layout(41), 41)
	assert.Equal(t, "11A", Layout(41)[40])
	assert.Nil(t, Layout(0))
}

func TestIndexAndValid(t *testing.T) {
	tests := []struct {
		label string
		index int
	}{
		{"1A", 0},
		{"1D", 3},
		{"2A", 4},
		{"10C", 38},
		{"0A", -1},
		{"01A", -1},
		{"1E", -1},
		{"A", -1},
		{"+1A", -1},
		{"", -1},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.index, Index(tt.label))
		})
	}

	assert.True(t, Valid(4, "1D"))
	assert.False(t, Valid(4, "2A"))
}

func TestSelector_PicksRequestedSeats(t *testing.T) {
	sel := NewSelector(Layout(4), nil, 2)

	_, ok := sel.Selection()
	assert.False(t, ok)

	selected, err := sel.Toggle("1A")
	require.NoError(t, err)
	assert.True(t, selected)

	_, ok = sel.Selection()
	assert.False(t, ok, "selection is only emitted when complete")

	_, err = sel.Toggle("1B")
	require.NoError(t, err)

	seats, ok := sel.Selection()
	require.True(t, ok)
	assert.Equal(t, []string{"1A", "1B"}, seats)
}

func TestSelector_RejectsBookedSeat(t *testing.T) {
	sel := NewSelector(Layout(4), []string{"1A", "1B"}, 1)

	_, err := sel.Toggle("1A")
	assert.ErrorIs(t, err, ErrSeatBooked)
	assert.Empty(t, sel.Selected())
}

func TestSelector_IgnoresClickPastLimit(t *testing.T) {
	sel := NewSelector(Layout(8), nil, 2)

	for _, seat := range []string{"1A", "1B"} {
		_, err := sel.Toggle(seat)
		require.NoError(t, err)
	}

	_, err := sel.Toggle("1C")
	require.ErrorIs(t, err, ErrSelectionFull)
	assert.Contains(t, err.Error(), "can only select 2 seats")
	assert.Equal(t, []string{"1A", "1B"}, sel.Selected())
}

func TestSelector_DeselectAlwaysAllowed(t *testing.T) {
	sel := NewSelector(Layout(8), nil, 2)

	sel.Toggle("1A")
	sel.Toggle("1B")

	selected, err := sel.Toggle("1A")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Equal(t, []string{"1B"}, sel.Selected())
	assert.False(t, sel.Complete())

	_, err = sel.Toggle("2A")
	require.NoError(t, err)
	seats, ok := sel.Selection()
	require.True(t, ok)
	assert.Equal(t, []string{"1B", "2A"}, seats)
}

func TestSelector_UnknownSeat(t *testing.T) {
	sel := NewSelector(Layout(4), nil, 1)

	_, err := sel.Toggle("2A")
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestSelect(t *testing.T) {
	layout := Layout(8)

	seats, err := Select(layout, []string{"2A"}, 2, []string{"1C", "1A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1C", "1A"}, seats)

	_, err = Select(layout, []string{"2A"}, 1, []string{"2A"})
	assert.ErrorIs(t, err, ErrSeatBooked)

	_, err = Select(layout, nil, 2, []string{"1A", "1A"})
	assert.ErrorIs(t, err, ErrDuplicateSeat)

	_, err = Select(layout, nil, 3, []string{"1A", "1B"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	_, err = Select(layout, nil, 1, []string{"1A", "1B"})
	assert.ErrorIs(t, err, ErrSelectionFull)

	_, err = Select(layout, nil, 0, nil)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestMap(t *testing.T) {
	rows := Map(Layout(6), []string{"1B"}, []string{"1B", "2A"})

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 4)
	assert.Len(t, rows[1], 2)
	assert.Equal(t, SeatAvailable, rows[0][0].Status)
	assert.Equal(t, SeatBooked, rows[0][1].Status)
	assert.Equal(t, SeatHeld, rows[1][0].Status)
}
