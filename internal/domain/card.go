package domain

import "time"

// Card is a swipeable content item. LikedLabel and SkippedLabel are the
// overlay texts shown on right/left swipe; they do not track user state.
type Card struct {
	ID           int64
	Image        string
	Data         string
	LikedLabel   string
	SkippedLabel string
	CreatedAt    time.Time
}
