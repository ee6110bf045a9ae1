package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaDialer interface {
	DialContext(ctx context.Context, network, address string) (KafkaConn, error)
}

// KafkaConn is the admin subset of *kafka.Conn the topic setup needs.
type KafkaConn interface {
	Controller() (kafka.Broker, error)
	Close() error
	CreateTopics(topics ...kafka.TopicConfig) error
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
}

// BrokerDialer dials real brokers.
type BrokerDialer struct {
	Dialer *kafka.Dialer
}

func (d *BrokerDialer) DialContext(ctx context.Context, network, address string) (KafkaConn, error) {
	conn, err := d.Dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var ErrTopicNotReady = errors.New("topic not ready")

const (
	topicReadyAttempts = 5
	topicReadyBackoff  = 200 * time.Millisecond
)

// TopicCreator makes sure the tick topic exists before the generator writes.
type TopicCreator struct {
	logger *zap.Logger
	dialer KafkaDialer
	clock  Clock
}

func NewTopicCreator(logger *zap.Logger, dialer KafkaDialer, clock Clock) *TopicCreator {
	return &TopicCreator{
		logger: logger,
		dialer: dialer,
		clock:  clock,
	}
}

// Ensure creates topic through the cluster controller, tolerating "already
// exists", and waits until its partitions are readable.
func (tc *TopicCreator) Ensure(ctx context.Context, brokers []string, topic string, partitions int) error {
	var conn KafkaConn
	err := errors.New("no brokers configured")
	for _, addr := range brokers {
		conn, err = tc.dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("dial brokers: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}

	controllerAddr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	controllerConn, err := tc.dialer.DialContext(ctx, "tcp", controllerAddr)
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	tc.logger.Info("Topic creation request sent", zap.String("topic", topic), zap.Int("partitions", partitions))

	return tc.waitForTopic(conn, topic)
}

func (tc *TopicCreator) waitForTopic(conn KafkaConn, topic string) error {
	for i := 0; i < topicReadyAttempts; i++ {
		tc.clock.Sleep(topicReadyBackoff)
		parts, err := conn.ReadPartitions(topic)
		if err == nil && len(parts) > 0 {
			tc.logger.Info("Topic is ready", zap.String("topic", topic), zap.Int("partitions", len(parts)))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTopicNotReady, topic)
}
