package router

import (
	"net/url"
	"strings"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/shared"
)

// Destination paths
const (
	PathDashboard       = "/dashboard"
	PathMessages        = "/messages"
	PathClients         = "/clients"
	PathSchedule        = "/schedule"
	PathPrograms        = "/programs"
	PathLibrary         = "/library"
	PathClientDashboard = "/client-dashboard"
)

// coach area prefix -> client area prefix, empty mean no client equivalent
var clientPrefixes = map[string]string{
	PathDashboard: PathClientDashboard,
	PathMessages:  PathClientDashboard + PathMessages,
	PathSchedule:  PathClientDashboard + PathSchedule,
	PathPrograms:  PathClientDashboard + PathPrograms,
	PathLibrary:   PathClientDashboard + PathLibrary,
	PathClients:   "",
}

// Compute destination of notification for viewer role, total over every type and role
func Compute(t domain.Type, payload domain.Payload, role string) domain.Destination {
	dest := coachDestination(t, payload)
	if role == shared.RoleClient {
		return rewriteForClient(dest)
	}
	return dest
}

// ComputeNotification destination of persisted notification
func ComputeNotification(n domain.Notification, role string) domain.Destination {
	return Compute(n.Type, n.Payload, role)
}

func coachDestination(t domain.Type, payload domain.Payload) domain.Destination {
	switch t {
	case domain.TypeMessage:
		p, _ := payload.(domain.MessagePayload)
		if p.ConversationID == "" {
			return domain.Destination{Path: PathMessages}
		}
		return withAction(withQuery(PathMessages, "conversation", p.ConversationID), "Reply")

	case domain.TypeClientJoinRequest:
		p, _ := payload.(domain.ClientJoinPayload)
		if p.ClientID == "" {
			return domain.Destination{Path: PathClients}
		}
		return withAction(withQuery(PathClients, "client", p.ClientID), "Review request")

	case domain.TypeLessonScheduled, domain.TypeLessonCancelled, domain.TypeLessonReminder:
		p, _ := payload.(domain.LessonPayload)
		if p.EventID == "" {
			return domain.Destination{Path: PathSchedule}
		}
		path := withQuery(PathSchedule, "event", p.EventID)
		if t == domain.TypeLessonScheduled {
			return withAction(path, "View lesson")
		}
		return domain.Destination{Path: path}

	case domain.TypeTimeSwapRequest:
		p, _ := payload.(domain.TimeSwapPayload)
		if p.SwapRequestID == "" {
			return domain.Destination{Path: PathSchedule}
		}
		return withAction(withQuery(PathSchedule, "swap", p.SwapRequestID), "Respond")

	case domain.TypeWorkoutAssigned, domain.TypeProgramAssigned:
		p, _ := payload.(domain.ProgramPayload)
		if p.ProgramID == "" {
			return domain.Destination{Path: PathPrograms}
		}
		return withAction(PathPrograms+"/"+url.PathEscape(p.ProgramID), "Open program")

	case domain.TypeVideoSubmission, domain.TypeVideoFeedback:
		p, _ := payload.(domain.VideoPayload)
		if p.SubmissionID == "" {
			return domain.Destination{Path: PathLibrary}
		}
		path := withQuery(PathLibrary, "submission", p.SubmissionID)
		if t == domain.TypeVideoSubmission {
			return withAction(path, "Review video")
		}
		return domain.Destination{Path: path}

	case domain.TypeSystem:
		p, _ := payload.(domain.SystemPayload)
		if isRelativePath(p.Link) {
			return domain.Destination{Path: p.Link}
		}
		return domain.Destination{Path: PathDashboard}
	}

	return domain.Destination{Path: PathDashboard}
}

func rewriteForClient(dest domain.Destination) domain.Destination {
	path, ok := RewritePathForClient(dest.Path)
	if !ok {
		return domain.Destination{Path: path}
	}
	dest.Path = path
	if dest.QuickAction != nil {
		actionPath, ok := RewritePathForClient(dest.QuickAction.Path)
		if !ok {
			dest.QuickAction = nil
		} else {
			dest.QuickAction = &domain.QuickAction{Label: dest.QuickAction.Label, Path: actionPath}
		}
	}
	return dest
}

// RewritePathForClient substitute coach area prefix with client area prefix, query kept untouched.
// Return false when coach area has no client equivalent and collapse to client dashboard
func RewritePathForClient(path string) (string, bool) {
	pathOnly, query := path, ""
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		pathOnly, query = path[:idx], path[idx:]
	}

	for coachPrefix, clientPrefix := range clientPrefixes {
		if pathOnly != coachPrefix && !strings.HasPrefix(pathOnly, coachPrefix+"/") {
			continue
		}
		if clientPrefix == "" {
			return PathClientDashboard, false
		}
		return clientPrefix + strings.TrimPrefix(pathOnly, coachPrefix) + query, true
	}
	return path, true
}

func withQuery(path, key, value string) string {
	return path + "?" + url.Values{key: []string{value}}.Encode()
}

func withAction(path, label string) domain.Destination {
	return domain.Destination{Path: path, QuickAction: &domain.QuickAction{Label: label, Path: path}}
}

func isRelativePath(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") && !strings.Contains(link, `\`)
}
