package eventbus

import (
	"context"
	"encoding/json"
	"errors"
)

// Topic은 이벤트가 발행되는 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	// Key 는 파티션 키다. 비어 있으면 ID 를 쓴다.
	Key string `json:"-"`
}

// EventBus 인터페이스는 이벤트 발행의 추상화를 정의합니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// ErrBusClosed는 닫힌 버스에 발행을 시도했을 때 반환됩니다.
var ErrBusClosed = errors.New("event bus closed")
