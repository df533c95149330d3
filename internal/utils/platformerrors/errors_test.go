package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrorTypeRateLimited, http.StatusTooManyRequests},
		{ErrorTypeExternal, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}

func TestAsError_KeepsTypeAndUUID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerInfrastructure, ErrorTypeExternal, "model call failed", errors.New("dial tcp"), "abc")

	wrapped := AsError(ctx, LayerDomain, inner, "recommend")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeExternal, wrapped.Type)
	assert.Equal(t, "abc", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.Equal(t, "recommend: model call failed", wrapped.Message)
	assert.True(t, IsErrorType(wrapped, ErrorTypeExternal))
}

func TestAsError_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerHandler, errors.New("boom"), "decode")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Nil(t, AsError(context.Background(), LayerHandler, nil, "noop"))
}

func TestWriteError_FlatBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation exposes message",
			err:      NewError(context.Background(), LayerHandler, ErrorTypeValidation, "Missing 'destination'", nil, ""),
			wantCode: http.StatusBadRequest,
			wantBody: "Missing 'destination'",
		},
		{
			name:     "external hides message",
			err:      NewError(context.Background(), LayerInfrastructure, ErrorTypeExternal, "upstream said 401", nil, ""),
			wantCode: http.StatusInternalServerError,
			wantBody: "Recommendation error",
		},
		{
			name:     "plain error is internal",
			err:      errors.New("json: cannot unmarshal"),
			wantCode: http.StatusInternalServerError,
			wantBody: "Recommendation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			WriteError(c, tt.err, zerolog.Nop(), "Recommendation error")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}
