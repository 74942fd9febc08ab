package kafkaworker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/coachlab/notification-service/pkg/codebase/factory"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/logger"
)

type kafkaWorker struct {
	engine          sarama.ConsumerGroup
	service         factory.ServiceFactory
	consumerHandler *consumerHandler
	opt             option
	cancelFunc      func()
	done            chan struct{}
}

// NewWorker create new kafka consumer group worker from every module kafka handler
func NewWorker(service factory.ServiceFactory, opts ...OptionFunc) factory.AppServerFactory {
	worker := &kafkaWorker{
		service: service,
		opt:     getDefaultOption(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(&worker.opt)
	}

	broker := service.GetDependency().GetBroker(types.Kafka)
	if broker == nil {
		log.Panic("Kafka consumer: broker is not initialized")
	}

	// init kafka consumer
	consumerEngine, err := sarama.NewConsumerGroupFromClient(worker.opt.consumerGroup, broker.GetClient())
	if err != nil {
		log.Panicf("Error creating kafka consumer group client: %v", err)
	}
	worker.engine = consumerEngine
	worker.consumerHandler = newConsumerHandler(service, worker.opt)

	fmt.Printf("\x1b[34;1m⇨ Kafka consumer is active. Brokers: %s\x1b[0m\n\n", strings.Join(worker.opt.brokers, ", "))
	return worker
}

func (h *kafkaWorker) Serve() {
	defer close(h.done)
	if len(h.consumerHandler.topics) == 0 {
		log.Println("Kafka consumer: no topic provided")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancelFunc = cancel

	for {
		// Consume return when server-side rebalance happen, must be recreated to get new claims
		if err := h.engine.Consume(ctx, h.consumerHandler.topics, h.consumerHandler); err != nil {
			if err == sarama.ErrClosedConsumerGroup {
				return
			}
			logger.LogEf("Error from kafka consumer: %v", err)
			time.Sleep(time.Second)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (h *kafkaWorker) Shutdown(ctx context.Context) {
	log.Println("Stopping Kafka Consumer worker...")
	defer func() { log.Println("\x1b[33;1mStopping Kafka Consumer:\x1b[0m \x1b[32;1mSUCCESS\x1b[0m") }()

	if h.cancelFunc != nil {
		h.cancelFunc()
	}
	h.consumerHandler.wg.Wait()
	h.engine.Close()

	select {
	case <-h.done:
	case <-ctx.Done():
	}
}

func (h *kafkaWorker) Name() string {
	return string(types.Kafka)
}

// consumerHandler represents a Sarama consumer group consumer
type consumerHandler struct {
	opt          option
	topics       []string
	handlerFuncs map[string]types.WorkerHandler // mapping topic to handler func in delivery layer
	semaphore    chan struct{}                  // for control maximum total goroutines when exec handlers
	wg           sync.WaitGroup
}

func newConsumerHandler(service factory.ServiceFactory, opt option) *consumerHandler {
	c := &consumerHandler{
		opt:          opt,
		handlerFuncs: make(map[string]types.WorkerHandler),
		semaphore:    make(chan struct{}, opt.maxGoroutines),
	}
	for _, m := range service.GetModules() {
		if h := m.WorkerHandler(types.Kafka); h != nil {
			var handlerGroup types.WorkerHandlerGroup
			h.MountHandlers(&handlerGroup)
			for _, handler := range handlerGroup.Handlers {
				if _, ok := c.handlerFuncs[handler.Pattern]; ok {
					logger.LogYellow(fmt.Sprintf("Kafka: warning, topic %s has been used in another module, overwrite handler func", handler.Pattern))
				} else {
					c.topics = append(c.topics, handler.Pattern)
				}
				c.handlerFuncs[handler.Pattern] = handler
				logger.LogYellow(fmt.Sprintf("[KAFKA-CONSUMER] (topic): %-20s  (consumed by module)--> [%s]", handler.Pattern, m.Name()))
			}
		}
	}
	return c
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (c *consumerHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (c *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (c *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			c.semaphore <- struct{}{}
			c.wg.Add(1)
			go func(message *sarama.ConsumerMessage) {
				defer func() {
					c.wg.Done()
					<-c.semaphore
				}()
				c.processMessage(session, message)
			}(msg)

		case <-session.Context().Done():
			return nil

		}
	}
}

// processMessage message is always marked, failed handler is reported to its error handlers and never redelivered
func (c *consumerHandler) processMessage(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	var err error
	ctx := session.Context()
	handler, ok := c.handlerFuncs[message.Topic]
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			for _, errHandler := range handler.ErrorHandler {
				errHandler(ctx, types.Kafka, message.Topic, message.Value, err)
			}
		}
		session.MarkMessage(message, "")
	}()

	if !ok {
		return
	}

	if c.opt.debugMode {
		log.Printf("\x1b[35;3mKafka Consumer: message consumed, timestamp = %v, topic = %s\x1b[0m", message.Timestamp, message.Topic)
	}

	if err = handler.HandlerFunc(ctx, message.Value); err != nil {
		for _, errHandler := range handler.ErrorHandler {
			errHandler(ctx, types.Kafka, message.Topic, message.Value, err)
		}
	}
}
