package application

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// blankDecimal decodes a blank form value ("" or null) as an unset amount.
type blankDecimal struct {
	decimal.NullDecimal
}

func (d *blankDecimal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil && strings.TrimSpace(s) == "" {
		d.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	return d.NullDecimal.UnmarshalJSON(b)
}

// blankUUID decodes "" or null as no id.
type blankUUID struct {
	id *uuid.UUID
}

func (u *blankUUID) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == nil || strings.TrimSpace(*s) == "" {
		u.id = nil
		return nil
	}

	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return err
	}

	u.id = &id

	return nil
}
