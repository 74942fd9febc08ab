package redisfanout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap/zapcore"
)

const (
	// ChannelPrefix redis pub/sub channel prefix, one channel per user
	ChannelPrefix = "notif:live:"

	controlChannel    = ChannelPrefix + "_control"
	reconcileInterval = 30 * time.Second
	reconnectDelay    = 2 * time.Second
)

// Fanout bridge registries of every instance through redis pub/sub.
// An instance subscribes the channel of a user while it holds at least one live channel of that user
type Fanout struct {
	pool     *redis.Pool
	registry *realtime.Registry

	mu      sync.Mutex
	pending map[string]bool // user id -> want subscribed, latest presence change wins
	wake    chan struct{}

	// ping and full reconcile against registry on every tick
	reconcileEvery time.Duration

	ctx    context.Context
	cancel func()
	done   chan struct{}
}

// New create fanout and register it as presence listener of registry
func New(pool *redis.Pool, registry *realtime.Registry) *Fanout {
	f := &Fanout{
		pool:           pool,
		registry:       registry,
		pending:        make(map[string]bool),
		wake:           make(chan struct{}, 1),
		reconcileEvery: reconcileInterval,
		done:           make(chan struct{}),
	}
	f.ctx, f.cancel = context.WithCancel(context.Background())
	registry.SetPresenceListener(f)
	return f
}

// ChannelName redis channel of user
func ChannelName(userID string) string {
	return ChannelPrefix + userID
}

// OnUserOnline implement realtime.PresenceListener
func (f *Fanout) OnUserOnline(userID string) {
	f.setPending(userID, true)
}

// OnUserOffline implement realtime.PresenceListener
func (f *Fanout) OnUserOffline(userID string) {
	f.setPending(userID, false)
}

// called under registry lock, must not block
func (f *Fanout) setPending(userID string, subscribe bool) {
	f.mu.Lock()
	f.pending[userID] = subscribe
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Fanout) takePending() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := f.pending
	f.pending = make(map[string]bool)
	return pending
}

// Publish message to every instance holding a live channel of user, return number of instances received it
func (f *Fanout) Publish(ctx context.Context, userID string, message []byte) (receivers int, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "RedisFanout:Publish")
	defer func() {
		trace.SetError(err)
		trace.Finish()
	}()
	trace.SetTag("channel", ChannelName(userID))

	conn, err := f.pool.GetContext(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	receivers, err = redis.Int(conn.Do("PUBLISH", ChannelName(userID), message))
	trace.SetTag("receivers", receivers)
	return receivers, err
}

// Serve implement factory.AppServerFactory, listen until shutdown and reconnect on connection error
func (f *Fanout) Serve() {
	defer close(f.done)

	fmt.Printf("\x1b[34;1m⇨ Redis fanout listener is active. Channel prefix: %s\x1b[0m\n\n", ChannelPrefix)
	for f.ctx.Err() == nil {
		err := f.listen()
		if err == nil || f.ctx.Err() != nil {
			return
		}

		logger.Log(zapcore.ErrorLevel, err.Error(), "RedisFanout", "listen")
		select {
		case <-f.ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// Shutdown implement factory.AppServerFactory
func (f *Fanout) Shutdown(ctx context.Context) {
	defer log.Println("\x1b[33;1mStopping Redis Fanout:\x1b[0m \x1b[32;1mSUCCESS\x1b[0m")

	f.cancel()
	select {
	case <-f.done:
	case <-ctx.Done():
	}
}

// Name implement factory.AppServerFactory
func (f *Fanout) Name() string {
	return string(types.RedisFanout)
}

// listen single pubsub connection: one goroutine receive, this goroutine send subscription changes
func (f *Fanout) listen() error {
	psc := redis.PubSubConn{Conn: f.pool.Get()}
	defer psc.Close()

	// changes queued before the snapshot are already part of it
	f.takePending()
	subscribed := make(map[string]struct{})
	subscribe, _ := planChanges(subscribed, activeState(subscribed, f.registry.ActiveUserIDs()))
	if err := psc.Subscribe(append([]interface{}{controlChannel}, channelArgs(subscribe)...)...); err != nil {
		return err
	}
	markSubscribed(subscribed, subscribe, nil)

	received := make(chan error, 1)
	go func() {
		for {
			switch v := psc.Receive().(type) {
			case redis.Message:
				f.handleMessage(v)
			case redis.Subscription:
				if v.Count == 0 {
					received <- nil
					return
				}
			case error:
				received <- v
				return
			}
		}
	}()

	apply := func(want map[string]bool) error {
		subscribe, unsubscribe := planChanges(subscribed, want)
		if len(subscribe) > 0 {
			if err := psc.Subscribe(channelArgs(subscribe)...); err != nil {
				return err
			}
		}
		if len(unsubscribe) > 0 {
			if err := psc.Unsubscribe(channelArgs(unsubscribe)...); err != nil {
				return err
			}
		}
		markSubscribed(subscribed, subscribe, unsubscribe)
		return nil
	}

	ticker := time.NewTicker(f.reconcileEvery)
	defer ticker.Stop()

	for {
		select {
		case <-f.wake:
			if err := apply(f.takePending()); err != nil {
				return err
			}

		case <-ticker.C:
			if err := psc.Ping(""); err != nil {
				return err
			}
			if err := apply(activeState(subscribed, f.registry.ActiveUserIDs())); err != nil {
				return err
			}

		case err := <-received:
			if err == nil {
				err = errors.New("redis fanout: unsubscribed from every channel")
			}
			return err

		case <-f.ctx.Done():
			psc.Unsubscribe()
			select {
			case <-received:
			case <-time.After(time.Second):
			}
			return nil
		}
	}
}

// activeState wanted state of every user that is subscribed or holds a live channel
func activeState(subscribed map[string]struct{}, activeUserIDs []string) map[string]bool {
	want := make(map[string]bool, len(subscribed)+len(activeUserIDs))
	for userID := range subscribed {
		want[userID] = false
	}
	for _, userID := range activeUserIDs {
		want[userID] = true
	}
	return want
}

// planChanges user ids to subscribe and unsubscribe for reaching wanted state, sorted
func planChanges(subscribed map[string]struct{}, want map[string]bool) (subscribe, unsubscribe []string) {
	for userID, on := range want {
		_, ok := subscribed[userID]
		switch {
		case on && !ok:
			subscribe = append(subscribe, userID)
		case !on && ok:
			unsubscribe = append(unsubscribe, userID)
		}
	}
	sort.Strings(subscribe)
	sort.Strings(unsubscribe)
	return subscribe, unsubscribe
}

func markSubscribed(subscribed map[string]struct{}, subscribe, unsubscribe []string) {
	for _, userID := range subscribe {
		subscribed[userID] = struct{}{}
	}
	for _, userID := range unsubscribe {
		delete(subscribed, userID)
	}
}

func channelArgs(userIDs []string) []interface{} {
	args := make([]interface{}, 0, len(userIDs))
	for _, userID := range userIDs {
		args = append(args, ChannelName(userID))
	}
	return args
}

func (f *Fanout) handleMessage(msg redis.Message) int {
	if !strings.HasPrefix(msg.Channel, ChannelPrefix) || msg.Channel == controlChannel {
		return 0
	}
	userID := strings.TrimPrefix(msg.Channel, ChannelPrefix)
	return f.registry.Deliver(userID, msg.Data)
}
