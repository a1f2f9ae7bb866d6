package updatepasswordreset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	service "recovery/internal/core/services/complete_password_reset"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{
		User:         user.User{ID: input.UserID},
		SessionToken: user.SessionToken("session-token"),
		RedirectURL:  url.URL{Path: "/dashboard"},
	}, nil
}

func TestUpdatePasswordResetHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		paramName      string
		serviceErr     error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"user_id": "42", "token": "secret", "password": "new-password"}`,
			paramName:      "user_id",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token": "session-token", "redirect_url": "/dashboard"}`,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
		{
			id:             "numeric-user-id-and-custom-param",
			body:           `{"account": 42, "token": "secret", "password": "new-password"}`,
			paramName:      "account",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
		{
			id:             "forbidden",
			body:           `{"user_id": "42", "token": "wrong", "password": "new-password"}`,
			paramName:      "user_id",
			serviceErr:     passwordreset.ErrPasswordResetDoesNotExist,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error": "Please double check the URL or try submitting the form again.", "redirect": "/password_resets/new"}`,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("wrong"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
		{
			id:             "blank-password",
			body:           `{"user_id": "42", "token": "secret", "password": "  "}`,
			paramName:      "user_id",
			serviceErr:     fmt.Errorf("%w: cannot be blank", user.ErrInvalidPassword),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"user_id": 42, "token": "secret", "error": "Password can't be blank."}`,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword("  "),
			},
		},
		{
			id:             "short-password",
			body:           `{"user_id": "42", "token": "secret", "password": "short"}`,
			paramName:      "user_id",
			serviceErr:     fmt.Errorf("%w: the length must be between 8 and 256", user.ErrInvalidPassword),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"user_id": 42, "token": "secret", "error": "invalid password: the length must be between 8 and 256"}`,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword("short"),
			},
		},
		{
			id:             "invalid-json",
			body:           `{"user_id": `,
			paramName:      "user_id",
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "token-is-not-string",
			body:           `{"user_id": "42", "token": 1, "password": "new-password"}`,
			paramName:      "user_id",
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "too-long-token",
			body:           fmt.Sprintf(`{"user_id": "42", "token": "%s", "password": "x"}`, strings.Repeat("a", 2000)),
			paramName:      "user_id",
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "rejected-password-with-custom-param",
			body:           `{"account": "7", "token": "secret", "password": ""}`,
			paramName:      "account",
			serviceErr:     fmt.Errorf("%w: cannot be blank", user.ErrInvalidPassword),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"account": 7, "token": "secret", "error": "Password can't be blank."}`,
			expectedInput: &service.Input{
				UserID:      7,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword(""),
			},
		},
		{
			id:             "internal-error",
			body:           `{"user_id": "42", "token": "secret", "password": "new-password"}`,
			paramName:      "user_id",
			serviceErr:     errors.New("test"),
			expectedStatus: http.StatusInternalServerError,
			expectedInput: &service.Input{
				UserID:      42,
				Token:       passwordreset.Token("secret"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			srv := &stubService{err: testcase.serviceErr}
			handler := New(srv, testcase.paramName)
			req := httptest.NewRequest(http.MethodPut, "/password_resets", strings.NewReader(testcase.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			assert.Equal(t, testcase.expectedInput, srv.input)
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rec.Body.String())
			}
		})
	}
}
