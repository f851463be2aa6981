package timetable

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// JSON objects are written by hand so that days, periods and classes keep
// their timetable order instead of encoding/json's sorted map keys.

type member struct {
	key   string
	value any
}

func marshalObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalValue(m.key)
		if err != nil {
			return nil, err
		}
		v, err := marshalValue(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue encodes v without escaping HTML characters.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON writes the cell text, or null for an absent cell.
func (c RawCell) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return marshalValue(c.Text)
}

// UnmarshalJSON reads a string or null.
func (c *RawCell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NoCell
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Cell(s)
	return nil
}

// MarshalJSON writes the lesson with placeholders for unresolved fields.
func (l Lesson) MarshalJSON() ([]byte, error) {
	return marshalValue(struct {
		Initials string `json:"initials"`
		Teacher  string `json:"teacher"`
		Subject  string `json:"subject"`
		Room     string `json:"room"`
		Double   bool   `json:"double_period"`
	}{
		Initials: l.Initials(),
		Teacher:  l.Teacher(),
		Subject:  l.Subject(),
		Room:     l.RoomLabel(),
		Double:   l.Double,
	})
}

// MarshalJSON writes periods "1" to "7", empty periods as null.
func (d DaySchedule) MarshalJSON() ([]byte, error) {
	members := make([]member, 0, PeriodsPerDay)
	for i, l := range d {
		members = append(members, member{strconv.Itoa(i + 1), l})
	}
	return marshalObject(members)
}

// MarshalJSON writes the days in school-week order.
func (c ClassSchedule) MarshalJSON() ([]byte, error) {
	members := make([]member, 0, len(Days))
	for i, name := range Days {
		members = append(members, member{name, c.Days[i]})
	}
	return marshalObject(members)
}

// MarshalJSON writes one entry per class, in grid order.
func (t Timetable) MarshalJSON() ([]byte, error) {
	members := make([]member, 0, len(t.Classes))
	for _, c := range t.Classes {
		members = append(members, member{c.Name, c})
	}
	return marshalObject(members)
}
