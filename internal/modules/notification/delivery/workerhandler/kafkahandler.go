package workerhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/usecase"
	"github.com/coachlab/notification-service/pkg/codebase/factory/dependency"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/tracer"
	"go.uber.org/zap/zapcore"
)

// KafkaHandler struct
type KafkaHandler struct {
	dispatchTopic, userTopic string

	uc        usecase.NotificationUsecase
	validator interfaces.Validator
}

// NewKafkaHandler constructor
func NewKafkaHandler(uc usecase.NotificationUsecase, deps dependency.Dependency, dispatchTopic, userTopic string) *KafkaHandler {
	return &KafkaHandler{
		dispatchTopic: dispatchTopic,
		userTopic:     userTopic,
		uc:            uc,
		validator:     deps.GetValidator(),
	}
}

// MountHandlers mount handler group
func (h *KafkaHandler) MountHandlers(group *types.WorkerHandlerGroup) {
	group.Add(h.dispatchTopic, h.handleDispatch, logError)
	group.Add(h.userTopic, h.handleUserUpdated, logError)
}

// handleDispatch message rejected by validation or addressed to unknown user is dropped, retry would fail the same way
func (h *KafkaHandler) handleDispatch(ctx context.Context, message []byte) error {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationDeliveryKafka:Dispatch")
	defer trace.Finish()

	var req domain.DispatchRequest
	if err := json.Unmarshal(message, &req); err != nil {
		logger.LogEf("drop dispatch message, invalid json: %v", err)
		return nil
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		logger.LogEf("drop dispatch message, invalid payload: %v", err)
		return nil
	}

	result, err := h.uc.Dispatch(ctx, req)
	switch {
	case errors.Is(err, domain.ErrRecipientNotFound), errors.Is(err, domain.ErrInvalidNotificationType):
		logger.LogEf("drop dispatch message to %s: %v", req.RecipientID, err)
		return nil
	case err != nil:
		trace.SetError(err)
		return err
	}

	trace.SetTag("notification_id", result.Notification.ID)
	trace.SetTag("outcome", result.Outcome)
	return nil
}

func (h *KafkaHandler) handleUserUpdated(ctx context.Context, message []byte) error {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationDeliveryKafka:UserUpdated")
	defer trace.Finish()

	// settings absent from event keep every channel enabled
	user := domain.User{Settings: domain.DefaultUserSettings()}
	if err := json.Unmarshal(message, &user); err != nil {
		logger.LogEf("drop user message, invalid json: %v", err)
		return nil
	}
	if err := h.validator.ValidateStruct(&user); err != nil {
		logger.LogEf("drop user message, invalid payload: %v", err)
		return nil
	}

	if err := h.uc.SaveUser(ctx, &user); err != nil {
		trace.SetError(err)
		return err
	}
	return nil
}

func logError(ctx context.Context, workerType types.Worker, workerName string, message []byte, err error) {
	logger.LogWithField(zapcore.ErrorLevel, map[string]interface{}{
		"message": fmt.Sprintf("%s consumer: %v", workerType, err),
		"topic":   workerName,
		"payload": string(message),
	})
}
