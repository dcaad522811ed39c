package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

func TestCalendarDateTime(t *testing.T) {
	t.Run("canonical form", func(t *testing.T) {
		d := CalendarDate("2026-09-05")
		got, err := d.Time()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("ISO datetime prefix is tolerated", func(t *testing.T) {
		d := CalendarDate("2026-09-05T14:30:00Z")
		got, err := d.Time()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("malformed value errors", func(t *testing.T) {
		_, err := CalendarDate("next tuesday").Time()
		require.Error(t, err)
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, CalendarDate("").IsZero())
		assert.False(t, CalendarDate("2026-01-01").IsZero())
	})
}

func TestNewCalendarDate(t *testing.T) {
	d := NewCalendarDate(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, CalendarDate("2026-08-31"), d)
}

func TestCalendarDateBSON(t *testing.T) {
	t.Run("marshals as string", func(t *testing.T) {
		typ, data, err := CalendarDate("2026-09-05").MarshalBSONValue()
		require.NoError(t, err)
		assert.Equal(t, bsontype.String, typ)

		s, _, ok := bsoncore.ReadString(data)
		require.True(t, ok)
		assert.Equal(t, "2026-09-05", s)
	})

	t.Run("unmarshals from string", func(t *testing.T) {
		data := bsoncore.AppendString(nil, "2026-09-05")

		var d CalendarDate
		require.NoError(t, d.UnmarshalBSONValue(bsontype.String, data))
		assert.Equal(t, CalendarDate("2026-09-05"), d)
	})

	t.Run("unmarshals from legacy datetime", func(t *testing.T) {
		ms := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC).UnixMilli()
		data := bsoncore.AppendDateTime(nil, ms)

		var d CalendarDate
		require.NoError(t, d.UnmarshalBSONValue(bsontype.DateTime, data))
		assert.Equal(t, CalendarDate("2026-09-05"), d)
	})

	t.Run("unmarshals null as zero", func(t *testing.T) {
		var d CalendarDate = "leftover"
		require.NoError(t, d.UnmarshalBSONValue(bsontype.Null, nil))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects other types", func(t *testing.T) {
		var d CalendarDate
		assert.Error(t, d.UnmarshalBSONValue(bsontype.Int32, bsoncore.AppendInt32(nil, 7)))
	})
}
