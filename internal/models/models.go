// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Package models defines the persistent entities of the exchange platform.
package models

import "time"

// User is a registered member of the exchange.
type User struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Location     string    `gorm:"size:120" json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Book is a listing offered for exchange by its owner.
type Book struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;index" json:"title"`
	Author      string    `gorm:"size:120;not null;index" json:"author"`
	ISBN        string    `gorm:"size:20" json:"isbn,omitempty"`
	Category    string    `gorm:"size:80;not null;index" json:"category"`
	Condition   string    `gorm:"size:40" json:"condition,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Available   bool      `gorm:"default:true;index" json:"available"`
	OwnerID     int       `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Interaction is one append-only record of a user acting on a book. The
// recommendation engine reads these as implicit feedback.
type Interaction struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;index:idx_interactions_user" json:"user_id"`
	BookID    int       `gorm:"not null;index" json:"book_id"`
	Type      string    `gorm:"column:interaction_type;size:20;not null" json:"interaction_type"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName keeps the historical table name used by earlier releases.
func (Interaction) TableName() string {
	return "interactions"
}
