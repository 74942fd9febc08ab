package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/tracer"
)

func (uc *notificationUsecaseImpl) Dispatch(ctx context.Context, req domain.DispatchRequest) (result domain.DispatchResult, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:Dispatch")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("recipient_id", req.RecipientID)
	trace.SetTag("type", req.Type)

	if !req.Type.IsValid() {
		return result, domain.ErrInvalidNotificationType
	}

	recipient, err := uc.repo.User.FindUser(ctx, req.RecipientID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return result, domain.ErrRecipientNotFound
	}
	if err != nil {
		return result, fmt.Errorf("find recipient: %w", err)
	}

	notification := domain.Notification{
		RecipientID: recipient.ID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Payload:     domain.DecodePayload(req.Type, req.Payload),
	}
	if err = uc.repo.Notification.Insert(ctx, &notification); err != nil {
		return result, fmt.Errorf("persist notification: %w", err)
	}
	result.Notification = notification

	// everything below is best effort, the notification is already persisted
	view := uc.toView(notification, recipient.Role)
	envelopeType := realtime.EnvelopeNotification
	if notification.Type == domain.TypeMessage {
		envelopeType = realtime.EnvelopeNewMessage
	}
	result.LiveReceivers = uc.deliverLive(ctx, recipient.ID, realtime.NewEnvelope(envelopeType, view))
	trace.SetTag("live_receivers", result.LiveReceivers)

	if result.LiveReceivers > 0 {
		result.Outcome = domain.OutcomeDelivered
		uc.sendUnreadCount(ctx, recipient.ID)
		return result, nil
	}

	if !recipient.AllowsPush(notification.Type) {
		result.Outcome, result.Reason = domain.OutcomeQueued, "web push disabled by recipient settings"
		return result, nil
	}

	uc.sendPush(ctx, view, &result)
	trace.SetTag("outcome", result.Outcome)
	return result, nil
}

// deliverLive send to local channels, fall back to other instances when configured
func (uc *notificationUsecaseImpl) deliverLive(ctx context.Context, userID string, envelope realtime.Envelope) int {
	message, err := realtime.Marshal(envelope)
	if err != nil {
		logger.LogEf("marshal live envelope %s: %v", envelope.Type, err)
		return 0
	}

	receivers := uc.registry.Deliver(userID, message)
	if receivers == 0 && uc.publisher != nil {
		remote, err := uc.publisher.Publish(ctx, userID, message)
		if err != nil {
			logger.LogEf("publish live envelope to %s: %v", userID, err)
		}
		receivers += remote
	}
	return receivers
}

func (uc *notificationUsecaseImpl) sendUnreadCount(ctx context.Context, userID string) {
	count, err := uc.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		logger.LogEf("count unread of %s: %v", userID, err)
		return
	}
	uc.deliverLive(ctx, userID, realtime.NewEnvelope(realtime.EnvelopeUnreadCount, map[string]int{"count": count}))
}

func (uc *notificationUsecaseImpl) sendPush(ctx context.Context, view domain.NotificationView, result *domain.DispatchResult) {
	if uc.repo.Push == nil {
		result.Outcome, result.Reason = domain.OutcomeQueued, "web push is not configured"
		return
	}

	subs, err := uc.repo.PushSubscription.ListByUser(ctx, view.RecipientID)
	if err != nil {
		logger.LogEf("list push subscriptions of %s: %v", view.RecipientID, err)
		result.Outcome, result.Reason = domain.OutcomeQueued, "push subscriptions unavailable"
		return
	}
	if len(subs) == 0 {
		result.Outcome, result.Reason = domain.OutcomeQueued, "recipient has no live channel and no push subscription"
		return
	}

	payload, _ := json.Marshal(domain.PushMessage{
		NotificationID: view.ID,
		Type:           view.Type,
		Title:          view.Title,
		Body:           view.Message,
		URL:            view.Route,
		Tag:            string(view.Type),
	})

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, uc.maxGoroutines)
	)
	for _, sub := range subs {
		semaphore <- struct{}{}
		wg.Add(1)
		go func(sub domain.PushSubscription) {
			defer func() { <-semaphore; wg.Done() }()

			status, err := uc.repo.Push.Send(ctx, sub, payload)
			if status == domain.PushGone {
				// provider reported expired subscription, prune so it is never retried
				if err := uc.repo.PushSubscription.Delete(ctx, sub.ID); err != nil {
					logger.LogEf("delete gone push subscription %s: %v", sub.ID, err)
				}
			} else if status != domain.PushSent {
				logger.LogEf("web push to subscription %s failed: %v", sub.ID, err)
			}

			mu.Lock()
			defer mu.Unlock()
			switch status {
			case domain.PushSent:
				result.PushSent++
			case domain.PushGone:
				result.PushPruned++
			default:
				result.PushFailed++
			}
		}(sub)
	}
	wg.Wait()

	switch {
	case result.PushSent > 0:
		result.Outcome = domain.OutcomePushed
	case result.PushFailed == 0:
		result.Outcome, result.Reason = domain.OutcomeFailed, "every push subscription has expired"
	default:
		result.Outcome, result.Reason = domain.OutcomeFailed, "web push rejected by every subscription"
	}
}
