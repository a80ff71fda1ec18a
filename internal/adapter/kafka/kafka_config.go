package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const clientID = "delivery-api"

func baseConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_6_0_0
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg
}

func NewGroup(brokers []string, groupID string) (sarama.ConsumerGroup, error) {
	cfg := baseConfig()
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	return sarama.NewConsumerGroup(brokers, groupID, cfg)
}

// ProducerConfig waits for all in-sync replicas; SyncProducer needs Return.Successes.
func ProducerConfig() *sarama.Config {
	cfg := baseConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1 // required by the idempotent producer
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokers, ProducerConfig())
}
