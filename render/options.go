package render

import (
	"time"

	"github.com/rs/zerolog"
)

// RemittanceCode selects the machine-readable code printed on the invoice.
type RemittanceCode string

const (
	CodeNone   RemittanceCode = "none"
	CodeQR     RemittanceCode = "qr"
	CodePDF417 RemittanceCode = "pdf417"
)

// Option is a functional option for configuring Render.
type Option func(*config)

type config struct {
	pageSize     string
	family       string
	utf8Regular  []byte
	utf8Bold     []byte
	stationery   []byte
	code         RemittanceCode
	creationDate time.Time
	log          zerolog.Logger
}

func defaultConfig() config {
	return config{
		pageSize: "A4",
		family:   "Helvetica",
		code:     CodeQR,
		log:      zerolog.Nop(),
	}
}

// WithPageSize sets the page size by name ("A4", "Letter", ...).
func WithPageSize(size string) Option {
	return func(c *config) {
		if size != "" {
			c.pageSize = size
		}
	}
}

// WithUTF8Font registers a TrueType font and uses it for all text instead of
// the Helvetica core font. bold may be nil, in which case regular is used
// for bold text too.
func WithUTF8Font(family string, regular, bold []byte) Option {
	return func(c *config) {
		if family == "" || len(regular) == 0 {
			return
		}
		c.family = family
		c.utf8Regular = regular
		c.utf8Bold = bold
		if len(bold) == 0 {
			c.utf8Bold = regular
		}
	}
}

// WithStationery draws the first page of the given PDF as the background of
// every page.
func WithStationery(pdf []byte) Option {
	return func(c *config) {
		c.stationery = pdf
	}
}

// WithRemittanceCode selects the code printed next to the bank details.
func WithRemittanceCode(code RemittanceCode) Option {
	return func(c *config) {
		if code != "" {
			c.code = code
		}
	}
}

// WithCreationDate fixes the creation date recorded in the PDF. By default
// the invoice issue date is used, so identical documents render to
// identical bytes.
func WithCreationDate(t time.Time) Option {
	return func(c *config) {
		c.creationDate = t
	}
}

// WithLogger sets the logger used to report overflowing pages.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
