package events

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelPool keeps a fixed set of AMQP channels ready for publishing so the
// hot path never opens channels per request.
type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	queueName string
}

// NewChannelPool dials the broker, declares the queue and pre-creates size
// channels.
func NewChannelPool(url, queueName string, size int) (*ChannelPool, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		queueName: queueName,
	}
	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}
	return pool, nil
}

func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	// Queue declaration is idempotent.
	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return ch, nil
}

// Get takes a channel from the pool, replacing it with a fresh one if it was
// closed underneath us.
func (p *ChannelPool) Get() (*amqp.Channel, error) {
	select {
	case ch := <-p.channels:
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, errors.New("channel pool exhausted")
	}
}

// Put returns a channel to the pool. Closed channels are dropped.
func (p *ChannelPool) Put(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}
	select {
	case p.channels <- ch:
	default:
		_ = ch.Close()
	}
}

// Close drains the pool and closes the connection.
func (p *ChannelPool) Close() {
	for {
		select {
		case ch := <-p.channels:
			_ = ch.Close()
		default:
			if p.conn != nil {
				_ = p.conn.Close()
			}
			return
		}
	}
}
