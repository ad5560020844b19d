package importer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/importer/statement"
)

var ErrUnknownFormat = errors.New("unknown import format")

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCreditorStatement: statement.NewParser(),
		},
	}
}

// Formats lists the registered formats in a stable order.
func (s *Service) Formats() []Format {
	out := make([]Format, 0, len(s.importers))
	for f := range s.importers {
		out = append(out, f)
	}

	slices.Sort(out)

	return out
}

// Import parses r with the importer registered for format. An empty format
// means a creditor statement.
func (s *Service) Import(format Format, r io.Reader) ([]application.Creditor, error) {
	if format == "" {
		format = FormatCreditorStatement
	}

	imp, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	creditors, err := imp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	return creditors, nil
}
