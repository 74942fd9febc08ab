package broker

import (
	"context"
	"strings"

	"github.com/Shopify/sarama"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
)

type kafkaBroker struct {
	client sarama.Client
}

// InitKafkaBroker init kafka client
func InitKafkaBroker(brokers []string, clientID, clientVersion string) interfaces.Broker {
	deferFunc := logger.LogWithDefer("Load Kafka broker configuration... ")
	defer deferFunc()

	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	if clientVersion != "" {
		version, err := sarama.ParseKafkaVersion(clientVersion)
		if err != nil {
			panic("kafka version: " + err.Error())
		}
		cfg.Version = version
	}

	// consumer config
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategySticky

	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		panic("kafka brokers " + strings.Join(brokers, ", ") + ": " + err.Error())
	}
	return &kafkaBroker{client: client}
}

func (k *kafkaBroker) GetClient() sarama.Client {
	return k.client
}

func (k *kafkaBroker) Disconnect(ctx context.Context) error {
	deferFunc := logger.LogWithDefer("kafka: disconnect...")
	defer deferFunc()

	return k.client.Close()
}
