package consumers

import (
	"context"
	"recovery/internal/app/deps"
	dl "recovery/internal/core/domain/logging"
	passwordresetnotification "recovery/internal/rabbitmq/consumers/password_reset_notification"
)

func initPasswordResetNotificationConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	consumer := passwordresetnotification.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownPasswordResetNotificationConsumer := initPasswordResetNotificationConsumer(deps)

	return func() {
		shutdownPasswordResetNotificationConsumer()
	}
}
