// Package ticket renders booking tickets and the QR verification payload printed on them.
package ticket

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// ValidAfterArrival is how long a ticket stays verifiable after the bus arrives.
const ValidAfterArrival = 4 * time.Hour

var (
	ErrMalformedPayload = errors.New("malformed ticket verification payload")
	ErrTicketExpired    = errors.New("ticket verification expired")
)

// Verification is the data encoded in a ticket's QR code.
type Verification struct {
	BookingID string    `json:"bookingId"`
	Seats     []string  `json:"seats"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewVerification builds the payload for a trip arriving at arrival.
func NewVerification(bookingID string, seats []string, arrival time.Time) Verification {
	return Verification{
		BookingID: bookingID,
		Seats:     seats,
		ExpiresAt: arrival.Add(ValidAfterArrival).UTC(),
	}
}

// URL formats v as {base}/verify?bookingId=..&seats=1A,1B&expires=<RFC3339>.
func (v Verification) URL(base string) string {
	q := url.Values{}
	q.Set("bookingId", v.BookingID)
	q.Set("seats", strings.Join(v.Seats, ","))
	q.Set("expires", v.ExpiresAt.UTC().Format(time.RFC3339))
	return strings.TrimRight(base, "/") + "/verify?" + q.Encode()
}

// Expired reports whether now is past the payload's expiry.
func (v Verification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// ParseVerification is the inverse of Verification.URL. It accepts a full URL or just its query string.
func ParseVerification(raw string) (*Verification, error) {
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return VerificationFromQuery(values)
}

func VerificationFromQuery(values url.Values) (*Verification, error) {
	bookingID := values.Get("bookingId")
	if bookingID == "" {
		return nil, fmt.Errorf("%w: missing bookingId", ErrMalformedPayload)
	}

	rawSeats := values.Get("seats")
	if rawSeats == "" {
		return nil, fmt.Errorf("%w: missing seats", ErrMalformedPayload)
	}

	expires, err := time.Parse(time.RFC3339, values.Get("expires"))
	if err != nil {
		return nil, fmt.Errorf("%w: expires: %v", ErrMalformedPayload, err)
	}

	return &Verification{
		BookingID: bookingID,
		Seats:     strings.Split(rawSeats, ","),
		ExpiresAt: expires.UTC(),
	}, nil
}

// QRCode encodes content as a 256px PNG.
func QRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}
