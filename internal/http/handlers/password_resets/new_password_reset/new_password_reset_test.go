package newpasswordreset

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPasswordResetHandler(t *testing.T) {
	cases := []struct {
		id           string
		paramName    string
		expectedBody string
	}{
		{
			id:           "default-param",
			paramName:    "user_id",
			expectedBody: `{"action": "/password_resets", "method": "POST", "fields": ["email"], "user_id_param": "user_id"}`,
		},
		{
			id:           "custom-param",
			paramName:    "account",
			expectedBody: `{"action": "/password_resets", "method": "POST", "fields": ["email"], "user_id_param": "account"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/password_resets/new", nil)
			rec := httptest.NewRecorder()

			New(testcase.paramName).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, testcase.expectedBody, rec.Body.String())
		})
	}
}
