package domain

import "time"

type Link struct {
	ID            int64
	Code          string
	TargetURL     string
	TotalClicks   int64
	LastClickedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLink is the insert payload for a link that does not exist yet.
type NewLink struct {
	Code      string
	TargetURL string
	CreatedAt time.Time
}
