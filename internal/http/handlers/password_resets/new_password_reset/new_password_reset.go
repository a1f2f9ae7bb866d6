package newpasswordreset

import (
	"net/http"
	"recovery/internal/http/handlers/response"
)

// Handler describes the form which requests a new password reset. Refused
// reset links redirect here.
type Handler struct {
	userIDParamName string
}

func New(userIDParamName string) *Handler {
	return &Handler{userIDParamName: userIDParamName}
}

type Result struct {
	Action      string   `json:"action"`
	Method      string   `json:"method"`
	Fields      []string `json:"fields"`
	UserIDParam string   `json:"user_id_param"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(
		rw,
		Result{
			Action:      response.PasswordResetsURL,
			Method:      http.MethodPost,
			Fields:      []string{"email"},
			UserIDParam: h.userIDParamName,
		},
		http.StatusOK,
	)
}
