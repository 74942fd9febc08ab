package helper

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiError(t *testing.T) {
	mErr := NewMultiError()
	assert.False(t, mErr.HasError())

	mErr.Append("b", errors.New("second"))
	mErr.Append("a", errors.New("first"))
	mErr.Append("c", nil)

	assert.True(t, mErr.HasError())
	assert.Equal(t, map[string]string{"a": "first", "b": "second"}, mErr.ToMap())
	assert.Equal(t, "a: first\nb: second", mErr.Error())
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{name: "Testcase #1: default value", page: 0, limit: 0, wantPage: 1, wantLimit: DefaultLimit},
		{name: "Testcase #2: keep valid value", page: 3, limit: 15, wantPage: 3, wantLimit: 15},
		{name: "Testcase #3: clamp limit", page: 2, limit: 1000, wantPage: 2, wantLimit: MaxLimit},
		{name: "Testcase #4: clamp overflowing page", page: math.MaxInt, limit: 10, wantPage: math.MaxInt32/10 + 1, wantLimit: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePaging(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTrim(" a , ,b ", ","))
	assert.Nil(t, SplitTrim("", ","))
}
