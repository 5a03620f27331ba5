package sqlstore

import (
	"fmt"
	"time"
)

// SQLite drivers hand timestamps back as text when the column type is not
// visible to them (RETURNING, expressions), so dbTime accepts both forms.
var dbTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = dbTime{}

		return nil
	case time.Time:
		*t = dbTime{Time: v.UTC(), Valid: true}

		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case int64:
		*t = dbTime{Time: time.Unix(v, 0).UTC(), Valid: true}

		return nil
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = dbTime{Time: parsed.UTC(), Valid: true}

			return nil
		}
	}

	return fmt.Errorf("scan timestamp: unrecognized format %q", s)
}
