package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// CalendarDateLayout is the canonical wire format for campaign dates.
const CalendarDateLayout = "2006-01-02"

// CalendarDate is a calendar date with no time component, stored as an
// ISO "YYYY-MM-DD" string. Older documents may hold a full datetime for
// these fields, so decoding accepts both a BSON string (any ISO-prefixed
// value) and a BSON datetime.
type CalendarDate string

// NewCalendarDate truncates a time to its calendar date.
func NewCalendarDate(t time.Time) CalendarDate {
	return CalendarDate(t.Format(CalendarDateLayout))
}

// IsZero reports whether no date is set.
func (d CalendarDate) IsZero() bool {
	return d == ""
}

// Time parses the date. Values longer than the canonical layout are
// accepted as long as they start with an ISO date prefix.
func (d CalendarDate) Time() (time.Time, error) {
	s := string(d)
	if len(s) > len(CalendarDateLayout) {
		s = s[:len(CalendarDateLayout)]
	}
	t, err := time.Parse(CalendarDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", string(d), err)
	}
	return t, nil
}

// MarshalBSONValue stores the date as a plain string.
func (d CalendarDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.String, bsoncore.AppendString(nil, string(d)), nil
}

// UnmarshalBSONValue accepts either a string or a datetime value.
func (d *CalendarDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("invalid BSON string for calendar date")
		}
		*d = CalendarDate(s)
		return nil
	case bsontype.DateTime:
		ms, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("invalid BSON datetime for calendar date")
		}
		*d = NewCalendarDate(time.UnixMilli(ms).UTC())
		return nil
	case bsontype.Null:
		*d = ""
		return nil
	default:
		return fmt.Errorf("cannot decode BSON type %s into calendar date", t)
	}
}
