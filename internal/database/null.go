package database

import (
	"database/sql"
)

type nullText struct {
	s *string
}

func (t nullText) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}

	*t.s = ns.String

	return nil
}

// Text scans a nullable text column into s, mapping NULL to "".
func Text(s *string) sql.Scanner {
	return nullText{s: s}
}

// NullString stores "" as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
