package models

import "time"

// Reply is an answer posted in a thread. Both parents cascade-delete: removing
// the user or the thread removes the reply.
type Reply struct {
	ReplyID  uint   `json:"reply_id" gorm:"column:reply_id;primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	ThreadID uint   `json:"thread_id" gorm:"not null;index"`
	Content  string `json:"content" gorm:"not null;size:500"`
	Correct  bool   `json:"correct" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reply) TableName() string {
	return "replies"
}
