package editpasswordreset

import (
	"errors"
	"net/http"
	e "recovery/internal/core/domain/errors"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/services"
	service "recovery/internal/core/services/validate_password_reset"
	passwordresets "recovery/internal/http/handlers/password_resets"
	"recovery/internal/http/handlers/response"
)

// Handler renders what the edit form needs once the link has been checked.
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

type Result struct {
	User          response.User          `json:"user"`
	PasswordReset response.PasswordReset `json:"password_reset"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	token := query.Get("token")
	if len(token) > passwordresets.TOKEN_MAX_LEN {
		response.RenderForbidden(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			UserID: passwordresets.ParseUserID(query.Get(h.userIDParamName)),
			Token:  passwordreset.Token(token),
		},
	)
	if errors.Is(err, passwordreset.ErrForbidden) {
		response.RenderForbidden(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	res := Result{}
	res.User.FromDomainUser(result.User)
	res.PasswordReset.FromDomainPasswordReset(result.PasswordReset)
	response.Render(rw, res, http.StatusOK)
}
