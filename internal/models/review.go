// Package models contains data structures for the application's domain models.
package models

import "time"

// Review is a scored text critique of a title. Each author can review a
// given title once; the composite unique index is the authoritative guard
// against concurrent duplicates.
type Review struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TitleID  uint      `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"title"`
	AuthorID uint      `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"-"`
	Text     string    `gorm:"not null" json:"text"`
	Score    int       `gorm:"not null" json:"score"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`

	// AuthorName mirrors Author.Username for serialization; repositories
	// fill it in after preloading the author.
	AuthorName string `gorm:"-" json:"author"`

	Comments []Comment `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is a text reply attached to a review.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ReviewID uint      `gorm:"not null;index" json:"-"`
	AuthorID uint      `gorm:"not null" json:"-"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"-"`
	Text     string    `gorm:"not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`

	AuthorName string `gorm:"-" json:"author"`
}
