package router

import (
	"strings"
	"testing"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		typ        domain.Type
		payload    domain.Payload
		role       string
		wantPath   string
		wantAction string
	}{
		{
			name: "Testcase #1: client join request for coach", typ: domain.TypeClientJoinRequest,
			payload: domain.ClientJoinPayload{ClientID: "k1"}, role: shared.RoleCoach,
			wantPath: "/clients?client=k1", wantAction: "Review request",
		},
		{
			name: "Testcase #2: client join request for client collapse to dashboard", typ: domain.TypeClientJoinRequest,
			payload: domain.ClientJoinPayload{ClientID: "k1"}, role: shared.RoleClient,
			wantPath: "/client-dashboard",
		},
		{
			name: "Testcase #3: message with conversation for coach", typ: domain.TypeMessage,
			payload: domain.MessagePayload{ConversationID: "c1"}, role: shared.RoleCoach,
			wantPath: "/messages?conversation=c1", wantAction: "Reply",
		},
		{
			name: "Testcase #4: message with conversation for client", typ: domain.TypeMessage,
			payload: domain.MessagePayload{ConversationID: "c1"}, role: shared.RoleClient,
			wantPath: "/client-dashboard/messages?conversation=c1", wantAction: "Reply",
		},
		{
			name: "Testcase #5: message without conversation fall back to list", typ: domain.TypeMessage,
			payload: domain.MessagePayload{}, role: shared.RoleCoach,
			wantPath: "/messages",
		},
		{
			name: "Testcase #6: lesson scheduled", typ: domain.TypeLessonScheduled,
			payload: domain.LessonPayload{EventID: "e1"}, role: shared.RoleCoach,
			wantPath: "/schedule?event=e1", wantAction: "View lesson",
		},
		{
			name: "Testcase #7: lesson cancelled for client without action", typ: domain.TypeLessonCancelled,
			payload: domain.LessonPayload{EventID: "e1"}, role: shared.RoleClient,
			wantPath: "/client-dashboard/schedule?event=e1",
		},
		{
			name: "Testcase #8: time swap request", typ: domain.TypeTimeSwapRequest,
			payload: domain.TimeSwapPayload{SwapRequestID: "s1", EventID: "e1"}, role: shared.RoleCoach,
			wantPath: "/schedule?swap=s1", wantAction: "Respond",
		},
		{
			name: "Testcase #9: program assigned for client", typ: domain.TypeProgramAssigned,
			payload: domain.ProgramPayload{ProgramID: "p1"}, role: shared.RoleClient,
			wantPath: "/client-dashboard/programs/p1", wantAction: "Open program",
		},
		{
			name: "Testcase #10: workout assigned without program", typ: domain.TypeWorkoutAssigned,
			payload: domain.ProgramPayload{WorkoutID: "w1"}, role: shared.RoleCoach,
			wantPath: "/programs",
		},
		{
			name: "Testcase #11: video submission", typ: domain.TypeVideoSubmission,
			payload: domain.VideoPayload{SubmissionID: "v1"}, role: shared.RoleCoach,
			wantPath: "/library?submission=v1", wantAction: "Review video",
		},
		{
			name: "Testcase #12: video feedback for client", typ: domain.TypeVideoFeedback,
			payload: domain.VideoPayload{SubmissionID: "v1"}, role: shared.RoleClient,
			wantPath: "/client-dashboard/library?submission=v1",
		},
		{
			name: "Testcase #13: system with relative link", typ: domain.TypeSystem,
			payload: domain.SystemPayload{Link: "/settings/billing"}, role: shared.RoleCoach,
			wantPath: "/settings/billing",
		},
		{
			name: "Testcase #14: system with external link", typ: domain.TypeSystem,
			payload: domain.SystemPayload{Link: "https://evil.example.com"}, role: shared.RoleClient,
			wantPath: "/client-dashboard",
		},
		{
			name: "Testcase #15: unknown type", typ: domain.Type("LEGACY"),
			payload: domain.EmptyPayload{}, role: shared.RoleCoach,
			wantPath: "/dashboard",
		},
		{
			name: "Testcase #16: payload variant mismatch", typ: domain.TypeMessage,
			payload: domain.VideoPayload{SubmissionID: "v1"}, role: shared.RoleCoach,
			wantPath: "/messages",
		},
		{
			name: "Testcase #17: nil payload", typ: domain.TypeClientJoinRequest,
			payload: nil, role: shared.RoleCoach,
			wantPath: "/clients",
		},
		{
			name: "Testcase #18: id escaped", typ: domain.TypeMessage,
			payload: domain.MessagePayload{ConversationID: "a&b"}, role: shared.RoleCoach,
			wantPath: "/messages?conversation=a%26b", wantAction: "Reply",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.typ, tt.payload, tt.role)
			assert.Equal(t, tt.wantPath, got.Path)
			if tt.wantAction == "" {
				assert.Nil(t, got.QuickAction)
			} else if assert.NotNil(t, got.QuickAction) {
				assert.Equal(t, tt.wantAction, got.QuickAction.Label)
				assert.Equal(t, tt.wantPath, got.QuickAction.Path)
			}
		})
	}
}

func TestCompute_Total(t *testing.T) {
	types := append([]domain.Type{"", "UNKNOWN"}, domain.Types...)
	for _, typ := range types {
		for _, role := range []string{shared.RoleCoach, shared.RoleClient, ""} {
			for _, payload := range []domain.Payload{nil, domain.NewPayload(typ), domain.EmptyPayload{}} {
				assert.NotPanics(t, func() {
					got := Compute(typ, payload, role)
					assert.NotEmpty(t, got.Path)
				})
			}
		}
	}
	assert.Equal(t, PathDashboard, Compute("UNKNOWN", nil, shared.RoleCoach).Path)
}

func TestCompute_RoleRewriteKeepQuery(t *testing.T) {
	for _, typ := range domain.Types {
		payload := map[domain.Type]domain.Payload{
			domain.TypeMessage:         domain.MessagePayload{ConversationID: "c1"},
			domain.TypeLessonScheduled: domain.LessonPayload{EventID: "e1"},
			domain.TypeTimeSwapRequest: domain.TimeSwapPayload{SwapRequestID: "s1"},
			domain.TypeVideoFeedback:   domain.VideoPayload{SubmissionID: "v1"},
		}[typ]
		if payload == nil {
			continue
		}

		coach := Compute(typ, payload, shared.RoleCoach).Path
		client := Compute(typ, payload, shared.RoleClient).Path
		coachQuery := coach[strings.Index(coach, "?"):]
		clientQuery := client[strings.Index(client, "?"):]
		assert.Equal(t, coachQuery, clientQuery, typ)
		assert.True(t, strings.HasPrefix(client, PathClientDashboard+"/"), client)
	}
}

func TestRewritePathForClient(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "/dashboard", want: "/client-dashboard", wantOK: true},
		{path: "/messages", want: "/client-dashboard/messages", wantOK: true},
		{path: "/programs/p1", want: "/client-dashboard/programs/p1", wantOK: true},
		{path: "/clients?client=k1", want: "/client-dashboard", wantOK: false},
		{path: "/messagesx", want: "/messagesx", wantOK: true},
		{path: "/settings", want: "/settings", wantOK: true},
	}
	for _, tt := range tests {
		got, ok := RewritePathForClient(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
	}
}
