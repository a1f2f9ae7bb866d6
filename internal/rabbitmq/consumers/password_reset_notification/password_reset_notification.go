package passwordresetnotification

import (
	"context"
	c "recovery/internal/core/domain/common"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/rabbitmq"
	"recovery/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer delivers queued reset links through the given notifier.
type Consumer struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	queue    string
	notifier passwordreset.Notifier
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	notifier passwordreset.Notifier,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, notifier: notifier}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery.Body)
			c.Ack(delivery)
		}
	}()
	return nil
}

// handle never fails the delivery: a lost email is reported and dropped, the
// user can request another link.
func (c *Consumer) handle(ctx context.Context, body []byte) {
	message := &schema.PasswordResetNotification{}
	if err := message.Unmarshal(body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal password reset notification.",
			logging.Entry("err", err),
		)
		return
	}

	u, reset := decode(message)
	c.log.Info(
		ctx,
		"Got password reset notification.",
		logging.Entry("userID", u.ID),
		logging.Entry("passwordResetID", reset.ID),
	)
	if err := c.notifier.SendPasswordChangeNotification(ctx, u, reset); err != nil {
		c.log.Error(
			ctx,
			"Could not send password reset notification.",
			logging.Entry("userID", u.ID),
			logging.Entry("passwordResetID", reset.ID),
			logging.Entry("err", err),
		)
		return
	}
	c.log.Info(ctx, "Password reset notification has been sent.", logging.Entry("passwordResetID", reset.ID))
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func decode(message *schema.PasswordResetNotification) (user.User, passwordreset.PasswordReset) {
	u := user.User{ID: user.ID(message.UserID), Email: c.Email(message.Email)}
	reset := passwordreset.PasswordReset{
		ID:        passwordreset.ID(message.PasswordResetID),
		UserID:    u.ID,
		Token:     passwordreset.Token(message.Token),
		ExpiresAt: message.ExpiresAt,
	}
	return u, reset
}
