package resthandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/usecase"
	"github.com/coachlab/notification-service/pkg/codebase/factory/dependency"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/coachlab/notification-service/pkg/wrapper"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
)

// OptionFunc rest handler option
type OptionFunc func(*RestHandler)

// SetHeartbeat option, interval of sse comment and websocket ping
func SetHeartbeat(d time.Duration) OptionFunc {
	return func(h *RestHandler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// SetSendBuffer option, pending message capacity of each live channel
func SetSendBuffer(n int) OptionFunc {
	return func(h *RestHandler) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// SetSingleStreamPerUser option, new live channel replace previous channel of same kind
func SetSingleStreamPerUser(single bool) OptionFunc {
	return func(h *RestHandler) {
		h.singleStream = single
	}
}

// RestHandler handler
type RestHandler struct {
	mw        interfaces.Middleware
	uc        usecase.NotificationUsecase
	validator interfaces.Validator

	upgrader     websocket.Upgrader
	heartbeat    time.Duration
	sendBuffer   int
	singleStream bool
}

// NewRestHandler create new rest handler
func NewRestHandler(uc usecase.NotificationUsecase, deps dependency.Dependency, opts ...OptionFunc) *RestHandler {
	h := &RestHandler{
		uc: uc, mw: deps.GetMiddleware(), validator: deps.GetValidator(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// live channel is authenticated by bearer token, not by cookie
			CheckOrigin: func(*http.Request) bool { return true },
		},
		heartbeat:  30 * time.Second,
		sendBuffer: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount handler with root "/"
// handling version in here
func (h *RestHandler) Mount(root *echo.Group) {
	v1Root := root.Group(helper.V1)

	bearer := echo.WrapMiddleware(h.mw.HTTPBearerAuth)
	liveBearer := echo.WrapMiddleware(h.mw.HTTPLiveBearerAuth)
	basic := echo.WrapMiddleware(h.mw.HTTPBasicAuth)

	live := v1Root.Group("/live")
	live.GET("/stream", h.liveStream, liveBearer)
	live.GET("/ws", h.liveWebSocket, liveBearer)
	live.GET("/stats", h.liveStats, basic)

	notif := v1Root.Group("/notifications")
	notif.POST("/dispatch", h.dispatch, basic)
	notif.GET("", h.listNotifications, bearer)
	notif.GET("/unread-count", h.countUnread, bearer)
	notif.PUT("/read-all", h.markAllRead, bearer)
	notif.PUT("/:id/read", h.markRead, bearer)
	notif.GET("/:id/route", h.getRoute, bearer)

	push := v1Root.Group("/push")
	push.GET("/vapid-public-key", h.vapidPublicKey)
	push.POST("/subscriptions", h.subscribePush, bearer)
	push.DELETE("/subscriptions", h.unsubscribePush, bearer)
}

func (h *RestHandler) liveStream(c echo.Context) error {
	ctx := c.Request().Context()
	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	ch := realtime.NewChannel(realtime.KindSSE, h.slot(c, realtime.KindSSE), h.sendBuffer)
	release, err := h.openChannel(c, tokenClaim.UserID(), ch)
	if err != nil {
		return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error()).JSON(c.Response())
	}
	defer release()

	if err := realtime.ServeSSE(ctx, c.Response(), ch, h.heartbeat); err != nil {
		logger.LogEf("live stream of %s: %v", tokenClaim.UserID(), err)
	}
	return nil
}

func (h *RestHandler) liveWebSocket(c echo.Context) error {
	tokenClaim := shared.ParseTokenClaimFromContext(c.Request().Context())
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrader already replied with http error
		return nil
	}
	defer conn.Close()

	ch := realtime.NewChannel(realtime.KindWebSocket, h.slot(c, realtime.KindWebSocket), h.sendBuffer)
	release, err := h.openChannel(c, tokenClaim.UserID(), ch)
	if err != nil {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return nil
	}
	defer release()

	if err := realtime.ServeWebSocket(conn, ch, h.heartbeat); err != nil {
		logger.LogEf("live websocket of %s: %v", tokenClaim.UserID(), err)
	}
	return nil
}

func (h *RestHandler) openChannel(c echo.Context, userID string, ch *realtime.Channel) (func(), error) {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:OpenLiveChannel")
	defer trace.Finish()

	release, err := h.uc.OpenLiveChannel(ctx, userID, ch)
	trace.SetError(err)
	return release, err
}

// slot of new channel, same slot replace previous channel of user
func (h *RestHandler) slot(c echo.Context, kind realtime.ChannelKind) string {
	if clientID := c.QueryParam("clientId"); clientID != "" {
		return clientID
	}
	if h.singleStream {
		return string(kind)
	}
	return ""
}

func (h *RestHandler) liveStats(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:LiveStats")
	defer trace.Finish()

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", h.uc.LiveStats(ctx)).JSON(c.Response())
}

func (h *RestHandler) dispatch(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:Dispatch")
	defer trace.Finish()

	var payload domain.DispatchRequest
	if err := c.Bind(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed parse request body", err).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	result, err := h.uc.Dispatch(ctx, payload)
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusCreated, "Success", result).JSON(c.Response())
}

func (h *RestHandler) listNotifications(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:ListNotifications")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx) // must using HTTPBearerAuth in middleware for this handler
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	filter := domain.ListFilter{
		Page:       helper.ParseInt(c.QueryParam("page"), helper.DefaultPage),
		Limit:      helper.ParseInt(c.QueryParam("limit"), helper.DefaultLimit),
		UnreadOnly: helper.ParseBool(c.QueryParam("unread")),
	}
	viewer := domain.Viewer{UserID: tokenClaim.UserID(), Role: tokenClaim.Role}

	data, meta, err := h.uc.ListNotifications(ctx, viewer, filter)
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}
	if data == nil {
		data = []domain.NotificationView{}
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", meta, data).JSON(c.Response())
}

func (h *RestHandler) countUnread(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:CountUnread")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	count, err := h.uc.CountUnread(ctx, tokenClaim.UserID())
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", map[string]int{"count": count}).JSON(c.Response())
}

func (h *RestHandler) markAllRead(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:MarkAllRead")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	affected, err := h.uc.MarkAllRead(ctx, tokenClaim.UserID())
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", map[string]int64{"updated": affected}).JSON(c.Response())
}

func (h *RestHandler) markRead(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:MarkRead")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	if err := h.uc.MarkRead(ctx, tokenClaim.UserID(), c.Param("id")); err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success").JSON(c.Response())
}

func (h *RestHandler) getRoute(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:GetRoute")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	viewer := domain.Viewer{UserID: tokenClaim.UserID(), Role: tokenClaim.Role}
	dest, err := h.uc.GetRoute(ctx, viewer, c.Param("id"))
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", dest).JSON(c.Response())
}

func (h *RestHandler) vapidPublicKey(c echo.Context) error {
	key, err := h.uc.VAPIDPublicKey()
	if err != nil {
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}
	return wrapper.NewHTTPResponse(http.StatusOK, "Success", map[string]string{"publicKey": key}).JSON(c.Response())
}

func (h *RestHandler) subscribePush(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:SubscribePush")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	var payload domain.SubscribeRequest
	if err := c.Bind(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed parse request body", err).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	sub, err := h.uc.SubscribePush(ctx, tokenClaim.UserID(), c.Request().UserAgent(), payload)
	if err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusCreated, "Success", sub).JSON(c.Response())
}

func (h *RestHandler) unsubscribePush(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "NotificationDeliveryREST:UnsubscribePush")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	if tokenClaim == nil {
		return wrapper.NewHTTPResponse(http.StatusUnauthorized, "Unauthorized").JSON(c.Response())
	}

	var payload domain.UnsubscribeRequest
	if err := c.Bind(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed parse request body", err).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	if err := h.uc.UnsubscribePush(ctx, tokenClaim.UserID(), payload); err != nil {
		trace.SetError(err)
		return wrapper.NewHTTPResponse(errorStatus(err), err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success").JSON(c.Response())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrPushNotConfigured):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidNotificationType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
