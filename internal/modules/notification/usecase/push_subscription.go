package usecase

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/tracer"
)

func (uc *notificationUsecaseImpl) SubscribePush(ctx context.Context, userID, userAgent string, req domain.SubscribeRequest) (sub domain.PushSubscription, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:SubscribePush")
	defer func() { trace.SetError(err); trace.Finish() }()

	if uc.repo.Push == nil {
		return sub, domain.ErrPushNotConfigured
	}

	sub = domain.PushSubscription{
		UserID:    userID,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		UserAgent: userAgent,
	}
	err = uc.repo.PushSubscription.Upsert(ctx, &sub)
	return
}

func (uc *notificationUsecaseImpl) UnsubscribePush(ctx context.Context, userID string, req domain.UnsubscribeRequest) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:UnsubscribePush")
	defer func() { trace.SetError(err); trace.Finish() }()

	return uc.repo.PushSubscription.DeleteByEndpoint(ctx, userID, req.Endpoint)
}

func (uc *notificationUsecaseImpl) VAPIDPublicKey() (string, error) {
	if uc.repo.Push == nil || uc.repo.Push.PublicKey() == "" {
		return "", domain.ErrPushNotConfigured
	}
	return uc.repo.Push.PublicKey(), nil
}
