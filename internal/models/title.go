// Package models contains data structures for the application's domain models.
package models

import "time"

// Category is a top-level classification for titles (film, book, ...).
// A title keeps at most one category; deleting the category detaches it.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Genre is a many-to-many classification for titles.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Title represents a rated creative work.
//
// Rating is not a column: it is the average review score computed on read
// and nil while the title has no reviews.
type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Year        int       `gorm:"not null" json:"year"`
	Description *string   `json:"description"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE" json:"genre"`
	Rating      *float64  `gorm:"-" json:"rating"`
	CreatedAt   time.Time `json:"-"`

	Reviews []Review `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
}
