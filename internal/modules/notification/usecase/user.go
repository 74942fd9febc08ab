package usecase

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/tracer"
)

func (uc *notificationUsecaseImpl) SaveUser(ctx context.Context, user *domain.User) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationUsecase:SaveUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("user_id", user.ID)
	return uc.repo.User.SaveUser(ctx, user)
}
