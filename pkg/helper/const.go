package helper

const (
	// TimeFormatLogger const
	TimeFormatLogger = "2006/01/02 15:04:05"

	// V1 const
	V1 = "/v1"

	// HeaderAuthorization const
	HeaderAuthorization = "Authorization"
	// HeaderContentType const
	HeaderContentType = "Content-Type"
	// HeaderCacheControl const
	HeaderCacheControl = "Cache-Control"
	// HeaderConnection const
	HeaderConnection = "Connection"
	// HeaderMIMEApplicationJSON const
	HeaderMIMEApplicationJSON = "application/json"
	// HeaderMIMETextEventStream const
	HeaderMIMETextEventStream = "text/event-stream"

	// WORKDIR const for workdir environment
	WORKDIR = "WORKDIR"

	// QueryToken query param fallback for bearer token on live channels (EventSource cannot set headers)
	QueryToken = "token"

	// DefaultPage const
	DefaultPage = 1
	// DefaultLimit const
	DefaultLimit = 20
	// MaxLimit const
	MaxLimit = 100
)
