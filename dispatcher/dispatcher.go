package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/eventbus"
	"blog-api/events"
	"blog-api/models"
)

const source = "blog-api"

// EventDispatcher 포스트 변경 이벤트 발행 서비스
type EventDispatcher struct {
	bus   eventbus.EventBus
	topic eventbus.Topic
	now   func() time.Time
}

// NewEventDispatcher 새로운 이벤트 디스패처 생성
func NewEventDispatcher(bus eventbus.EventBus, topic eventbus.Topic) *EventDispatcher {
	return &EventDispatcher{
		bus:   bus,
		topic: topic,
		now:   time.Now,
	}
}

// PublishPostCreated 포스트 생성 이벤트 발행
func (d *EventDispatcher) PublishPostCreated(ctx context.Context, post *models.BlogPost) error {
	base := d.base(events.PostCreated)
	return d.publish(ctx, base, post.ID, events.PostCreatedEvent{
		BaseEvent:    base,
		PostSnapshot: snapshot(post),
	})
}

// PublishPostUpdated 포스트 수정 이벤트 발행
func (d *EventDispatcher) PublishPostUpdated(ctx context.Context, post *models.BlogPost) error {
	base := d.base(events.PostUpdated)
	return d.publish(ctx, base, post.ID, events.PostUpdatedEvent{
		BaseEvent:    base,
		PostSnapshot: snapshot(post),
	})
}

// PublishPostDeleted 포스트 삭제 이벤트 발행
func (d *EventDispatcher) PublishPostDeleted(ctx context.Context, id primitive.ObjectID) error {
	base := d.base(events.PostDeleted)
	return d.publish(ctx, base, id, events.PostDeletedEvent{
		BaseEvent: base,
		PostID:    id,
	})
}

func (d *EventDispatcher) base(t events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: d.now(),
		Source:    source,
		Version:   "1.0",
	}
}

// publish 는 같은 포스트의 이벤트가 한 파티션에 순서대로 쌓이도록 post_id 로 키를 건다.
func (d *EventDispatcher) publish(ctx context.Context, base events.BaseEvent, postID primitive.ObjectID, payload any) error {
	evt, err := eventbus.NewJSONEvent(base.ID, string(base.Type), payload)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	evt.Key = postID.Hex()
	return d.bus.Publish(ctx, d.topic.Base(), evt)
}

func snapshot(p *models.BlogPost) events.PostSnapshot {
	return events.PostSnapshot{
		PostID:  p.ID,
		Author:  p.Author.DisplayName(),
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}
