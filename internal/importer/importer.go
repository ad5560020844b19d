package importer

import (
	"io"

	"github.com/MrJamesThe3rd/khusela/internal/application"
)

// Format names a supported creditor source layout.
type Format string

const (
	FormatCreditorStatement Format = "creditor-statement"
)

// Importer turns an uploaded file into creditor lines ready for review.
type Importer interface {
	Parse(r io.Reader) ([]application.Creditor, error)
}
