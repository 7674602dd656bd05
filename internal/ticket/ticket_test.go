package ticket

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerification_RoundTrip(t *testing.T) {
	arrival := time.Date(2025, 3, 14, 13, 30, 0, 0, time.UTC)
	v := NewVerification("b-123", []string{"1A", "1B"}, arrival)

	raw := v.URL("https://yourapp.com/")
	assert.Equal(t, "https://yourapp.com/verify?bookingId=b-123&expires=2025-03-14T17%3A30%3A00Z&seats=1A%2C1B", raw)

	parsed, err := ParseVerification(raw)
	require.NoError(t, err)
	assert.Equal(t, "b-123", parsed.BookingID)
	assert.Equal(t, []string{"1A", "1B"}, parsed.Seats)
	assert.True(t, parsed.ExpiresAt.Equal(arrival.Add(4*time.Hour)))
}

func TestVerification_ExpiryUsesUTC(t *testing.T) {
	blantyre := time.FixedZone("CAT", 2*60*60)
	arrival := time.Date(2025, 3, 14, 23, 0, 0, 0, blantyre)

	parsed, err := ParseVerification(NewVerification("b-1", []string{"4C"}, arrival).URL("https://x"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC), parsed.ExpiresAt)
	assert.False(t, parsed.Expired(arrival))
	assert.True(t, parsed.Expired(arrival.Add(4*time.Hour+time.Second)))
}

func TestParseVerification_Malformed(t *testing.T) {
	for _, raw := range []string{
		"https://x/verify?seats=1A&expires=2025-03-14T17:30:00Z",
		"https://x/verify?bookingId=b&expires=2025-03-14T17:30:00Z",
		"https://x/verify?bookingId=b&seats=1A&expires=tomorrow",
		"bookingId=b&seats=1A&expires=%zz",
	} {
		_, err := ParseVerification(raw)
		assert.ErrorIs(t, err, ErrMalformedPayload, raw)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "5h", FormatDuration(300))
	assert.Equal(t, "5h 30m", FormatDuration(330))
}

func TestRender_WithQRCode(t *testing.T) {
	url := NewVerification("b-1", []string{"1A"}, time.Now()).URL("https://yourapp.com")
	png, err := QRCode(url)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	pdf, err := Render(Ticket{
		Reference: "ABCD1234",
		Company:   Company{Name: "AXA Coaches", Phone: "+265991234567"},
		Trip:      Trip{Origin: "Lilongwe", Destination: "Blantyre", Date: "2025-03-14", Departure: "08:00", Arrival: "13:30", Duration: "5h 30m"},
		Bus:       Bus{Type: "AC", Number: "BT 1234", Amenities: []string{"wifi", "ac"}},
		Seats:     []string{"1A"},
		Status:    "Assigned",
		Passengers: []Passenger{
			{Name: "Chikondi Banda", Age: 30, Gender: "female", Seat: "1A"},
		},
		Payment:   Payment{Total: 5000, Currency: "MWK", Status: "paid", Service: "PayChangu", TransactionID: "TXN-1a2b3c4d"},
		QRCode:    png,
		QRContent: url,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
