package passwordreset

import (
	"net/url"
	"time"
)

const (
	DefaultTimeLimit   = 15 * time.Minute
	DefaultUserIDParam = "user_id"
)

// Settings holds the host system configuration of the password recovery flow.
type Settings struct {
	TimeLimit       time.Duration
	PostUpdateURL   url.URL
	UserIDParamName string
}

func NewSettings(timeLimit time.Duration, postUpdateURL url.URL, userIDParamName string) Settings {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if userIDParamName == "" {
		userIDParamName = DefaultUserIDParam
	}
	if postUpdateURL.String() == "" {
		postUpdateURL = url.URL{Path: "/"}
	}
	return Settings{
		TimeLimit:       timeLimit,
		PostUpdateURL:   postUpdateURL,
		UserIDParamName: userIDParamName,
	}
}
