package updatepasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "recovery/internal/core/domain/errors"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
	service "recovery/internal/core/services/complete_password_reset"
	passwordresets "recovery/internal/http/handlers/password_resets"
	"recovery/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service         services.Service[service.Input, service.Result]
	userIDParamName string
}

func New(service services.Service[service.Input, service.Result], userIDParamName string) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if userIDParamName == "" {
		panic("user ID parameter name must not be empty")
	}
	return &Handler{service: service, userIDParamName: userIDParamName}
}

type Input struct {
	UserID   user.ID
	Token    string
	Password string
}

// FromJSON reads the owner id from the configured key, the rest of the body
// has a fixed shape.
func (i *Input) FromJSON(r io.Reader, userIDParamName string) error {
	body := map[string]json.RawMessage{}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return err
	}
	i.UserID = passwordresets.ParseJSONUserID(body[userIDParamName])
	if raw, ok := body["token"]; ok {
		if err := json.Unmarshal(raw, &i.Token); err != nil {
			return err
		}
	}
	if raw, ok := body["password"]; ok {
		if err := json.Unmarshal(raw, &i.Password); err != nil {
			return err
		}
	}
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Length(0, passwordresets.TOKEN_MAX_LEN)),
		validation.Field(&i.Password, validation.Length(0, 1024)),
	)
}

type Result struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body, h.userIDParamName); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			UserID:      input.UserID,
			Token:       passwordreset.Token(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	switch {
	case errors.Is(err, passwordreset.ErrForbidden):
		response.RenderForbidden(rw)
		return
	case errors.Is(err, user.ErrInvalidPassword):
		h.renderRejected(rw, input, invalidPasswordNotice(input.Password, err))
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	redirectURL := result.RedirectURL
	response.Render(
		rw,
		Result{Token: string(result.SessionToken), RedirectURL: redirectURL.String()},
		http.StatusOK,
	)
}

// renderRejected re-presents the form for the same user and token, which
// stay valid after a rejected password.
func (h *Handler) renderRejected(rw http.ResponseWriter, input Input, notice string) {
	response.Render(
		rw,
		map[string]interface{}{
			h.userIDParamName: input.UserID,
			"token":           input.Token,
			"error":           notice,
		},
		http.StatusUnprocessableEntity,
	)
}

func invalidPasswordNotice(password string, err error) string {
	if strings.TrimSpace(password) == "" {
		return response.BlankPasswordNotice
	}
	return err.Error()
}
