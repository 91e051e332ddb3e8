package model

import "time"

// ViewEvent is one detail-page read, appended by the engagement worker.
// The news row's Views counter stays the system of record; events feed
// the hot-news leaderboard and offline analytics.
type ViewEvent struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	NewsID   uint      `gorm:"not null;index" json:"news_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`
}

func (ViewEvent) TableName() string {
	return "news_view_events"
}
