package models

import (
	"time"
)

// Comment is a text annotation left by a user on a product. The wire shape
// exposes the author only as user_name (first name), projected at query time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	UserName  string    `gorm:"->;-:migration" json:"user_name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}
