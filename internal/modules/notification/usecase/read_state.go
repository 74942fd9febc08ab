package usecase

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/router"
	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/coachlab/notification-service/pkg/tracer"
)

func (uc *notificationUsecaseImpl) MarkRead(ctx context.Context, userID, id string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:MarkRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	if err = uc.repo.Notification.MarkRead(ctx, userID, id); err != nil {
		return err
	}
	uc.sendUnreadCount(ctx, userID)
	return nil
}

func (uc *notificationUsecaseImpl) MarkAllRead(ctx context.Context, userID string) (affected int64, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:MarkAllRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	if affected, err = uc.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		return 0, err
	}
	if affected > 0 {
		uc.sendUnreadCount(ctx, userID)
	}
	return affected, nil
}

func (uc *notificationUsecaseImpl) ListNotifications(ctx context.Context, viewer domain.Viewer, filter domain.ListFilter) (data []domain.NotificationView, meta shared.Meta, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:ListNotifications")
	defer func() { trace.SetError(err); trace.Finish() }()

	filter.RecipientID = viewer.UserID
	filter.Page, filter.Limit = helper.NormalizePaging(filter.Page, filter.Limit)

	list, err := uc.repo.Notification.ListByUser(ctx, filter)
	if err != nil {
		return nil, meta, err
	}
	total, err := uc.repo.Notification.Count(ctx, filter)
	if err != nil {
		return nil, meta, err
	}

	role := uc.resolveRole(ctx, viewer)
	data = make([]domain.NotificationView, 0, len(list))
	for _, n := range list {
		data = append(data, uc.toView(n, role))
	}
	return data, shared.NewMeta(filter.Page, filter.Limit, total), nil
}

func (uc *notificationUsecaseImpl) CountUnread(ctx context.Context, userID string) (count int, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:CountUnread")
	defer func() { trace.SetError(err); trace.Finish() }()

	return uc.repo.Notification.CountUnread(ctx, userID)
}

func (uc *notificationUsecaseImpl) GetRoute(ctx context.Context, viewer domain.Viewer, id string) (dest domain.Destination, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:GetRoute")
	defer func() { trace.SetError(err); trace.Finish() }()

	n, err := uc.repo.Notification.FindByID(ctx, id)
	if err != nil {
		return dest, err
	}
	if n.RecipientID != viewer.UserID {
		return dest, domain.ErrNotificationNotFound
	}
	return router.ComputeNotification(n, uc.resolveRole(ctx, viewer)), nil
}
