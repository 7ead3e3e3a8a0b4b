package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	ID int
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](DefaultConfig())

	assert.Nil(t, queue.Publish(ctx, &payload{ID: 1}))
	assert.Nil(t, queue.Publish(ctx, &payload{ID: 2}))
	assert.Equal(t, 2, queue.Size())

	msg, err := queue.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, 1, msg.T().ID)
	assert.Nil(t, msg.Ack())
	assert.NotNil(t, msg.Ack(), "double ack is rejected")
}

func TestQueue_NackRetry(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{MaxRetries: 1, RetryDelay: time.Millisecond, DeadLetter: true, QueueBuffer: 4})
	assert.Nil(t, queue.Publish(ctx, &payload{ID: 7}))

	msg, err := queue.Consume(ctx)
	assert.Nil(t, err)
	assert.Nil(t, msg.Nack(fmt.Errorf("transient")))

	// the message comes back once, then moves to the dead letter queue
	retryCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	msg, err = queue.Consume(retryCtx)
	assert.Nil(t, err)
	assert.Equal(t, 7, msg.T().ID)
	assert.Nil(t, msg.Nack(fmt.Errorf("still failing")))

	assert.Eventually(t, func() bool { return len(queue.DeadLetters()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.NotNil(t, err)
}
