package wrapper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/stretchr/testify/assert"
)

func TestNewHTTPResponse(t *testing.T) {
	type Data struct {
		ID string `json:"id"`
	}

	multiError := helper.NewMultiError()
	multiError.Append("endpoint", errors.New("required"))

	type args struct {
		code    int
		message string
		params  []interface{}
	}
	tests := []struct {
		name string
		args args
		want *HTTPResponse
	}{
		{
			name: "Testcase #1: Response data list (include meta)",
			args: args{
				code:    http.StatusOK,
				message: "List notifications",
				params: []interface{}{
					[]Data{{ID: "n1"}, {ID: "n2"}},
					shared.Meta{Page: 1, Limit: 10, TotalPages: 1, TotalRecords: 2},
				},
			},
			want: &HTTPResponse{
				Success: true,
				Code:    200,
				Message: "List notifications",
				Meta:    shared.Meta{Page: 1, Limit: 10, TotalPages: 1, TotalRecords: 2},
				Data:    []Data{{ID: "n1"}, {ID: "n2"}},
			},
		},
		{
			name: "Testcase #2: Response only message (without data)",
			args: args{
				code:    http.StatusOK,
				message: "Marked as read",
			},
			want: &HTTPResponse{
				Success: true,
				Code:    200,
				Message: "Marked as read",
			},
		},
		{
			name: "Testcase #3: Response failed (type error)",
			args: args{
				code:    http.StatusNotFound,
				message: "Notification not found",
				params:  []interface{}{errors.New("notification not found")},
			},
			want: &HTTPResponse{
				Code:    404,
				Message: "Notification not found",
				Errors:  map[string]string{"detail": "notification not found"},
			},
		},
		{
			name: "Testcase #4: Response failed (type multi error)",
			args: args{
				code:    http.StatusBadRequest,
				message: "Invalid subscription",
				params:  []interface{}{multiError},
			},
			want: &HTTPResponse{
				Code:    400,
				Message: "Invalid subscription",
				Errors:  map[string]string{"endpoint": "required"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewHTTPResponse(tt.args.code, tt.args.message, tt.args.params...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewHTTPResponse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPResponse_JSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := NewHTTPResponse(http.StatusCreated, "Subscribed", map[string]string{"id": "s1"}).JSON(rec)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, helper.HeaderMIMEApplicationJSON, rec.Header().Get(helper.HeaderContentType))

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Subscribed", body["message"])
}
