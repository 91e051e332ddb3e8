package model

import "time"

type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Image       string    `gorm:"size:255" json:"image"`
	Author      string    `gorm:"size:64" json:"author"`
	PublishTime time.Time `gorm:"not null;index" json:"publishTime"`
	Views       uint64    `gorm:"not null;default:0" json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}

// NewsSummary is the display-field projection used for related and hot
// listings. It is a separate type on purpose: list endpoints never leak
// columns beyond these.
type NewsSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Author      string    `json:"author"`
	PublishTime time.Time `json:"publishTime"`
	CategoryID  uint      `json:"categoryId"`
	Views       uint64    `json:"views"`
}

func (n *News) Summary() NewsSummary {
	return NewsSummary{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		Image:       n.Image,
		Author:      n.Author,
		PublishTime: n.PublishTime,
		CategoryID:  n.CategoryID,
		Views:       n.Views,
	}
}
