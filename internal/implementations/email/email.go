package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
	passwordResetBaseUrl  url.URL
	userIDParamName       string
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
	userIDParamName string,
) *EmailSender {
	return &EmailSender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseUrl:  passwordResetBaseUrl,
		userIDParamName:       userIDParamName,
	}
}

func (s *EmailSender) SendPasswordChangeNotification(
	ctx context.Context,
	u user.User,
	r passwordreset.PasswordReset,
) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParams, err := newPasswordResetTemplateParams(s.passwordResetBaseUrl, s.userIDParamName, u, r)
	if err != nil {
		return err
	}

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Email            string `json:"email"`
	PasswordResetUrl string `json:"passwordResetUrl"`
	ExpiresAt        string `json:"expiresAt"`
}

// PasswordResetURL builds the link of the edit form: owner id and token go to
// the query string, any query of the base URL is preserved.
func PasswordResetURL(base url.URL, userIDParamName string, userID user.ID, token passwordreset.Token) url.URL {
	query := base.Query()
	query.Set(userIDParamName, strconv.FormatInt(int64(userID), 10))
	query.Set("token", string(token))
	base.RawQuery = query.Encode()
	return base
}

func newPasswordResetTemplateParams(
	base url.URL,
	userIDParamName string,
	u user.User,
	r passwordreset.PasswordReset,
) (string, error) {
	link := PasswordResetURL(base, userIDParamName, u.ID, r.Token)
	params, err := json.Marshal(
		passwordResetTemplateParams{
			Email:            string(u.Email),
			PasswordResetUrl: link.String(),
			ExpiresAt:        carbon.Time2Carbon(r.ExpiresAt).ToDateTimeString(carbon.UTC) + " UTC",
		},
	)
	if err != nil {
		return "", err
	}
	return string(params), nil
}
