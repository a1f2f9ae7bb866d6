package deps

import (
	"context"
	"recovery/internal/config"
	dl "recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	drl "recovery/internal/core/domain/rate_limiter"
	duow "recovery/internal/core/domain/unit_of_work"
	"recovery/internal/core/domain/user"
	dbpasswordreset "recovery/internal/db/password_reset"
	uow "recovery/internal/db/unit_of_work"
	dbuser "recovery/internal/db/user"
	"recovery/internal/implementations/email"
	"recovery/internal/implementations/logging"
	passwordhasher "recovery/internal/implementations/password_hasher"
	randomstringgenerator "recovery/internal/implementations/random_string_generator"
	ratelimiter "recovery/internal/implementations/rate_limiter"
	"recovery/internal/implementations/session"
	"recovery/internal/rabbitmq"
	passwordresetnotification "recovery/internal/rabbitmq/publishers/password_reset_notification"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork              duow.UnitOfWork
	UserRepository          user.UserRepository
	PasswordResetRepository passwordreset.Repository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	UserSessionTokenGenerator   user.SessionTokenGenerator
	PasswordHasher              user.PasswordHasher
	PasswordPolicy              user.PasswordPolicy
	PasswordResetSettings       passwordreset.Settings
	PasswordResetTokenGenerator passwordreset.TokenGenerator
	PasswordResetNotifier       passwordreset.Notifier
	PasswordResetGuard          *passwordreset.Guard
	PasswordResetInvalidator    *passwordreset.Invalidator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.PasswordResetRepository = dbpasswordreset.NewPgxRepository(deps.DB)

	deps.PasswordResetSettings = passwordreset.NewSettings(
		deps.Config.PasswordResetTimeLimit,
		deps.Config.PasswordResetRedirectURL,
		deps.Config.PasswordResetUserIDParam,
	)
	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordResetBaseUrl,
		deps.PasswordResetSettings.UserIDParamName,
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.UserSessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordPolicy = user.NewPasswordPolicy(deps.Config.PasswordMinLength, deps.Config.PasswordMaxLength)
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator(randomstringgenerator.DefaultByteLength)
	deps.PasswordResetGuard = passwordreset.NewGuard(deps.Now)
	deps.PasswordResetInvalidator = passwordreset.NewInvalidator(deps.Now)

	closePasswordResetNotifier := deps.initRabbitmqPasswordResetNotifier()

	return deps, func() {
		closeFuncs := []func(){
			closePasswordResetNotifier,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqPasswordResetNotifier() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	// The default exchange routes by queue name.
	deps.PasswordResetNotifier = passwordresetnotification.NewRabbitMQ(deps.Logger, rabbitmqChannel, "", queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset notifier.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset notifier shut down.")
	}
}
