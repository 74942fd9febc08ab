package kafkaworker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/coachlab/notification-service/pkg/codebase/factory"
	"github.com/coachlab/notification-service/pkg/codebase/factory/dependency"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testService struct {
	modules []factory.ModuleFactory
}

func (s *testService) GetDependency() dependency.Dependency { return dependency.InitDependency() }
func (s *testService) GetModules() []factory.ModuleFactory  { return s.modules }
func (s *testService) Name() string                         { return "notification-service" }

type testModule struct {
	handler interfaces.WorkerHandler
}

func (testModule) RESTHandler() interfaces.RESTHandler { return nil }
func (m testModule) WorkerHandler(w types.Worker) interfaces.WorkerHandler {
	if w == types.Kafka {
		return m.handler
	}
	return nil
}
func (testModule) Name() string { return "test" }

type testHandler struct {
	fn         types.WorkerHandlerFunc
	mu         sync.Mutex
	errReports []string
}

func (h *testHandler) MountHandlers(group *types.WorkerHandlerGroup) {
	group.Add("notification.dispatch", h.fn, func(ctx context.Context, workerType types.Worker, workerName string, message []byte, err error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.errReports = append(h.errReports, string(message)+": "+err.Error())
	})
}

func (h *testHandler) reports() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.errReports...)
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) markedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marked)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumerHandler_Topics(t *testing.T) {
	h := &testHandler{fn: func(context.Context, []byte) error { return nil }}
	service := &testService{modules: []factory.ModuleFactory{testModule{handler: h}, testModule{handler: h}, testModule{}}}

	c := newConsumerHandler(service, getDefaultOption())
	assert.Equal(t, []string{"notification.dispatch"}, c.topics)
	assert.Equal(t, 10, cap(c.semaphore))
	assert.NoError(t, c.Setup(nil))
	assert.NoError(t, c.Cleanup(nil))
}

func TestConsumerHandler_ConsumeClaim(t *testing.T) {
	h := &testHandler{fn: func(ctx context.Context, message []byte) error {
		switch string(message) {
		case "fail":
			return errors.New("Something error")
		case "panic":
			panic("boom")
		}
		return nil
	}}
	service := &testService{modules: []factory.ModuleFactory{testModule{handler: h}}}
	opt := getDefaultOption()
	SetMaxGoroutines(2)(&opt)
	SetDebugMode(false)(&opt)
	c := newConsumerHandler(service, opt)

	session := &fakeSession{ctx: context.Background()}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 4)}
	claim.messages <- &sarama.ConsumerMessage{Topic: "notification.dispatch", Offset: 1, Value: []byte("ok")}
	claim.messages <- &sarama.ConsumerMessage{Topic: "notification.dispatch", Offset: 2, Value: []byte("fail")}
	claim.messages <- &sarama.ConsumerMessage{Topic: "notification.dispatch", Offset: 3, Value: []byte("panic")}
	claim.messages <- &sarama.ConsumerMessage{Topic: "unknown.topic", Offset: 4, Value: []byte("ok")}
	close(claim.messages)

	require.NoError(t, c.ConsumeClaim(session, claim))
	c.wg.Wait()

	assert.Equal(t, 4, session.markedCount())
	assert.ElementsMatch(t, []string{"fail: Something error", "panic: panic: boom"}, h.reports())
}

func TestConsumerHandler_ConsumeClaimStopOnSessionDone(t *testing.T) {
	c := newConsumerHandler(&testService{}, getDefaultOption())
	ctx, cancel := context.WithCancel(context.Background())
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	done := make(chan error)
	go func() { done <- c.ConsumeClaim(session, claim) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consume claim not stopped")
	}
}
