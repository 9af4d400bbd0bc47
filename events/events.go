package events

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	PostCreated EventType = "post.created"
	PostUpdated EventType = "post.updated"
	PostDeleted EventType = "post.deleted"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// PostSnapshot 이벤트 시점의 포스트 상태
type PostSnapshot struct {
	PostID  primitive.ObjectID `json:"post_id"`
	Author  string             `json:"author"`
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Created time.Time          `json:"created"`
}

// PostCreatedEvent 포스트 생성 이벤트
type PostCreatedEvent struct {
	BaseEvent
	PostSnapshot
}

// PostUpdatedEvent 포스트 수정 이벤트
type PostUpdatedEvent struct {
	BaseEvent
	PostSnapshot
}

// PostDeletedEvent 포스트 삭제 이벤트
type PostDeletedEvent struct {
	BaseEvent
	PostID primitive.ObjectID `json:"post_id"`
}
