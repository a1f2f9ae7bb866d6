package response

import (
	"encoding/json"
	"net/http"
)

const (
	ForbiddenNotice     = "Please double check the URL or try submitting the form again."
	BlankPasswordNotice = "Password can't be blank."
	PasswordResetsURL   = "/password_resets"
	NewPasswordResetURL = PasswordResetsURL + "/new"
)

type errorResponse struct {
	Error string `json:"error"`
}

type forbiddenResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RenderForbidden hides which check failed, every refusal looks the same.
func RenderForbidden(rw http.ResponseWriter) {
	Render(rw, forbiddenResponse{Error: ForbiddenNotice, Redirect: NewPasswordResetURL}, http.StatusForbidden)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
