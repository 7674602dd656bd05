package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

type Ticket struct {
	Reference  string
	Company    Company
	Trip       Trip
	Bus        Bus
	Seats      []string
	Status     string // Assigned or Pending
	Passengers []Passenger
	Payment    Payment
	QRCode     []byte // PNG, optional
	QRContent  string
}

type Company struct {
	Name  string
	Phone string
	Email string
}

type Trip struct {
	Origin      string
	Destination string
	Stops       []string
	Date        string
	Departure   string
	Arrival     string
	Duration    string
}

type Bus struct {
	Type      string
	Number    string
	Amenities []string
}

type Passenger struct {
	Name   string
	Age    int
	Gender string
	Seat   string
}

type Payment struct {
	Total         float64
	Currency      string
	Status        string
	Service       string
	TransactionID string
}

// FormatDuration renders minutes as "5h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Render produces the ticket as an A4 PDF.
func Render(t Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket "+t.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Bus Ticket")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Booking #"+t.Reference)
	pdf.Ln(10)

	section(pdf, "Company")
	line(pdf, "Name", t.Company.Name)
	line(pdf, "Phone", t.Company.Phone)
	line(pdf, "Email", t.Company.Email)

	section(pdf, "Trip")
	line(pdf, "Route", t.Trip.Origin+" -> "+t.Trip.Destination)
	if len(t.Trip.Stops) > 0 {
		line(pdf, "Stops", strings.Join(t.Trip.Stops, ", "))
	}
	line(pdf, "Date", t.Trip.Date)
	line(pdf, "Departure", t.Trip.Departure)
	line(pdf, "Arrival", t.Trip.Arrival)
	line(pdf, "Duration", t.Trip.Duration)

	section(pdf, "Bus")
	line(pdf, "Type", t.Bus.Type)
	line(pdf, "Number", t.Bus.Number)
	if len(t.Bus.Amenities) > 0 {
		line(pdf, "Amenities", strings.Join(t.Bus.Amenities, ", "))
	}

	section(pdf, "Seats")
	line(pdf, "Seats", strings.Join(t.Seats, ", "))
	line(pdf, "Status", t.Status)

	section(pdf, "Passengers")
	for i, p := range t.Passengers {
		line(pdf, fmt.Sprintf("%d.", i+1), fmt.Sprintf("%s, %d, %s - seat %s", p.Name, p.Age, p.Gender, p.Seat))
	}

	section(pdf, "Payment")
	line(pdf, "Total", fmt.Sprintf("%s %.2f", t.Payment.Currency, t.Payment.Total))
	line(pdf, "Status", t.Payment.Status)
	if t.Payment.Service != "" {
		line(pdf, "Service", t.Payment.Service)
	}
	if t.Payment.TransactionID != "" {
		line(pdf, "Transaction", t.Payment.TransactionID)
	}

	if len(t.QRCode) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(t.QRCode))
		pdf.Ln(4)
		pdf.ImageOptions("qr", 150, pdf.GetY(), 45, 45, false, opts, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetY(pdf.GetY() + 47)
		pdf.MultiCell(0, 4, t.QRContent, "", "R", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(35, 6, label)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}
