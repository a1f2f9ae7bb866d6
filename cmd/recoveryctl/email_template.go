package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/spf13/cobra"
)

const (
	defaultSubject  = "Change your password"
	defaultTextPart = "Someone, hopefully you, requested a link to change your password. " +
		"Follow {{passwordResetUrl}} before {{expiresAt}} to set a new one. " +
		"If you didn't request this, ignore this email, your password won't change."
	defaultHtmlPart = "<p>Someone, hopefully you, requested a link to change your password.</p>" +
		"<p><a href=\"{{passwordResetUrl}}\">Change my password</a></p>" +
		"<p>The link is valid until {{expiresAt}}.</p>" +
		"<p>If you didn't request this, ignore this email, your password won't change.</p>"
)

func newEmailTemplateCommand() *cobra.Command {
	var region, accessKey, secretKey string

	cmd := &cobra.Command{
		Use:   "email-template",
		Short: "Manage the Amazon SES template of the password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&region, "region", os.Getenv("AWS_REGION"), "AWS region")
	cmd.PersistentFlags().StringVar(&accessKey, "access-key", os.Getenv("AWS_ACCESS_KEY"), "AWS access key")
	cmd.PersistentFlags().StringVar(&secretKey, "secret-key", os.Getenv("AWS_SECRET_KEY"), "AWS secret key")

	newClient := func(ctx context.Context) (*ses.Client, error) {
		cfg, err := awsConfig.LoadDefaultConfig(
			ctx,
			awsConfig.WithRegion(region),
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		)
		if err != nil {
			return nil, err
		}
		return ses.NewFromConfig(cfg), nil
	}

	var name, subject, htmlPart, textPart string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			_, err = svc.CreateTemplate(cmd.Context(), &ses.CreateTemplateInput{
				Template: &types.Template{
					TemplateName: aws.String(name),
					SubjectPart:  aws.String(subject),
					HtmlPart:     aws.String(htmlPart),
					TextPart:     aws.String(textPart),
				},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s created.\n", name)
			return nil
		},
	}
	create.Flags().StringVar(&subject, "subject", defaultSubject, "Subject line")
	create.Flags().StringVar(&htmlPart, "html", defaultHtmlPart, "HTML body")
	create.Flags().StringVar(&textPart, "text", defaultTextPart, "Plain text body")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			_, err = svc.DeleteTemplate(cmd.Context(), &ses.DeleteTemplateInput{TemplateName: aws.String(name)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s deleted.\n", name)
			return nil
		},
	})

	var sender, to, data string
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a test email rendered with the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			_, err = svc.SendTemplatedEmail(cmd.Context(), &ses.SendTemplatedEmailInput{
				Source:       aws.String(sender),
				Destination:  &types.Destination{ToAddresses: []string{to}},
				Template:     aws.String(name),
				TemplateData: aws.String(data),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s.\n", to)
			return nil
		},
	}
	send.Flags().StringVar(&sender, "from", os.Getenv("AWS_EMAIL_SENDER"), "Verified sender address")
	send.Flags().StringVar(&to, "to", "", "Recipient address")
	send.Flags().StringVar(
		&data,
		"data",
		`{"email": "test@example.com", "passwordResetUrl": "https://example.com/password_resets/edit", "expiresAt": "2022-11-03 14:15:16 UTC"}`,
		"Template data as JSON",
	)
	_ = send.MarkFlagRequired("to")
	cmd.AddCommand(send)

	cmd.PersistentFlags().StringVar(&name, "name", envOr("AWS_EMAIL_PASSWORD_RESET_TEMPLATE", "password-reset"), "Template name")
	return cmd
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
