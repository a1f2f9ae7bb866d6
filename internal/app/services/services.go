package services

import (
	"recovery/internal/app/deps"
	drl "recovery/internal/core/domain/rate_limiter"
	"recovery/internal/core/services"
	completepasswordreset "recovery/internal/core/services/complete_password_reset"
	ratelimiting "recovery/internal/core/services/rate_limiting"
	requestpasswordreset "recovery/internal/core/services/request_password_reset"
	validatepasswordreset "recovery/internal/core/services/validate_password_reset"
)

type Services struct {
	RequestPasswordReset  services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ValidatePasswordReset services.Service[validatepasswordreset.Input, validatepasswordreset.Result]
	CompletePasswordReset services.Service[completepasswordreset.Input, completepasswordreset.Result]
}

func InitServices(deps *deps.Deps) *Services {
	return &Services{
		RequestPasswordReset: ratelimiting.WithRateLimiting[requestpasswordreset.Input, requestpasswordreset.Result](
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: deps.Config.PasswordResetRateLimit},
			requestpasswordreset.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetRepository,
				deps.PasswordResetTokenGenerator,
				deps.PasswordResetNotifier,
				deps.PasswordResetSettings,
				deps.Now,
			),
		),
		ValidatePasswordReset: validatepasswordreset.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetRepository,
			deps.PasswordResetGuard,
		),
		CompletePasswordReset: completepasswordreset.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordResetGuard,
			deps.PasswordResetInvalidator,
			deps.PasswordPolicy,
			deps.PasswordHasher,
			deps.UserSessionTokenGenerator,
			deps.PasswordResetSettings,
			deps.Now,
		),
	}
}
