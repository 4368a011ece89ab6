package models

import "time"

// Thread is a discussion topic started by a user. Deleting the owning user
// cascades to the thread (and its replies) at the database level.
type Thread struct {
	ThreadID          uint   `json:"thread_id" gorm:"column:thread_id;primaryKey"`
	UserID            uint   `json:"user_id" gorm:"not null;index"`
	Title             string `json:"title" gorm:"not null;size:255"`
	Content           string `json:"content" gorm:"not null;type:text"`
	PostedAnonymously bool   `json:"posted_anonymously" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Thread) TableName() string {
	return "threads"
}
