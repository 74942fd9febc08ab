package usecase

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/tracer"
)

func (uc *notificationUsecaseImpl) OpenLiveChannel(ctx context.Context, userID string, handle realtime.Handle) (release func(), err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:OpenLiveChannel")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("user_id", userID)
	trace.SetTag("kind", handle.Kind())

	uc.registry.Register(userID, handle)
	release = func() { uc.registry.Unregister(userID, handle) }

	established, _ := realtime.Marshal(realtime.NewEnvelope(realtime.EnvelopeConnectionEstablished, map[string]interface{}{
		"userId":    userID,
		"channelId": handle.ID(),
		"kind":      handle.Kind(),
	}))
	if err = handle.Send(established); err != nil {
		release()
		return nil, err
	}

	count, err := uc.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		// channel is usable without initial count, client polls it
		logger.LogEf("count unread of %s: %v", userID, err)
		return release, nil
	}
	unread, _ := realtime.Marshal(realtime.NewEnvelope(realtime.EnvelopeUnreadCount, map[string]int{"count": count}))
	if err = handle.Send(unread); err != nil {
		release()
		return nil, err
	}
	return release, nil
}

func (uc *notificationUsecaseImpl) LiveStats(ctx context.Context) domain.LiveStats {
	return domain.LiveStats{
		Connections: uc.registry.Count(),
		ActiveUsers: uc.registry.ActiveUserIDs(),
	}
}
