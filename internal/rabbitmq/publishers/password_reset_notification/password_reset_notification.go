package passwordresetnotification

import (
	"context"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ queues reset links for delivery by the notification consumer.
type RabbitMQ struct {
	log        logging.Logger
	channel    Publisher
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel Publisher, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if routingKey == "" {
		panic("routing key must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendPasswordChangeNotification(
	ctx context.Context,
	u user.User,
	r passwordreset.PasswordReset,
) error {
	message := newMessage(u, r)
	if err := message.Validate(); err != nil {
		return err
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("passwordResetID", r.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("passwordResetID", r.ID),
	)
	return nil
}

func newMessage(u user.User, r passwordreset.PasswordReset) *schema.PasswordResetNotification {
	return &schema.PasswordResetNotification{
		UserID:          int64(u.ID),
		Email:           string(u.Email),
		PasswordResetID: int64(r.ID),
		Token:           string(r.Token),
		ExpiresAt:       r.ExpiresAt,
	}
}
