package di

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appadapters "jobboard_backend/internal/feature/applications/adapters"
	apphandler "jobboard_backend/internal/feature/applications/transport/handler"
	appusecase "jobboard_backend/internal/feature/applications/usecase"
	authadapters "jobboard_backend/internal/feature/auth/adapters"
	authhandler "jobboard_backend/internal/feature/auth/transport/handler"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	authusecase "jobboard_backend/internal/feature/auth/usecase"
	jobadapters "jobboard_backend/internal/feature/jobs/adapters"
	jobhandler "jobboard_backend/internal/feature/jobs/transport/handler"
	jobusecase "jobboard_backend/internal/feature/jobs/usecase"
	payadapters "jobboard_backend/internal/feature/payments/adapters"
	payhandler "jobboard_backend/internal/feature/payments/transport/handler"
	payusecase "jobboard_backend/internal/feature/payments/usecase"
	"jobboard_backend/internal/platform/config"
	jwtmw "jobboard_backend/internal/platform/jwt"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

// Container holds everything the router needs.
type Container struct {
	Tokens *jwtmw.Generator
	Auth   authmw.Authenticator

	AuthHandler        *authhandler.AuthHandler
	JobHandler         *jobhandler.JobHandler
	CatalogHandler     *jobhandler.CatalogHandler
	ApplicationHandler *apphandler.ApplicationHandler
	PaymentHandler     *payhandler.PaymentHandler

	// Ready reports whether the backend answers.
	Ready func(ctx context.Context) error
}

// NewContainer builds stores, usecases and handlers over one backend.
func NewContainer(store kv.Store, cfg *config.Config, l *zap.Logger) *Container {
	ns := cfg.Storage.Namespace
	opts := []recordstore.Option{recordstore.WithMaxRetries(cfg.Storage.MaxRetries)}

	// Repository
	users := authadapters.NewUserStore(store, ns, opts...)
	sessions := authadapters.NewSessionStore(store, ns, opts...)
	jobs := jobadapters.NewJobStore(store, ns, opts...)
	categories := jobadapters.NewCategoryStore(store, ns, opts...)
	companies := jobadapters.NewCompanyStore(store, ns, opts...)
	stats := jobadapters.NewStatsStore(store, ns, opts...)
	apps := appadapters.NewApplicationStore(store, ns, jobs, l, opts...)
	payments := payadapters.NewPaymentStore(store, ns, users, l, opts...)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL())
	authUC := authusecase.NewAuthUsecase(users, sessions, tokens, authusecase.Options{
		SessionTTL:         cfg.SessionTTL(),
		RevalidateInterval: cfg.RevalidateInterval(),
	}, l)
	jobUC := jobusecase.NewJobUsecase(jobs, companies, apps, l)
	catalogUC := jobusecase.NewCatalogUsecase(categories, companies, stats, l)
	appUC := appusecase.NewApplicationUsecase(apps, users, jobs, l)
	payUC := payusecase.NewPaymentUsecase(payments, users, payusecase.Fee{
		Amount:   cfg.RegistrationFee(),
		Currency: cfg.Payment.Currency,
	}, l)

	statsKey := stats.Slot().Key()
	return &Container{
		Tokens:             tokens,
		Auth:               authUC,
		AuthHandler:        authhandler.NewAuthHandler(authUC, l),
		JobHandler:         jobhandler.NewJobHandler(jobUC, l),
		CatalogHandler:     jobhandler.NewCatalogHandler(catalogUC, l),
		ApplicationHandler: apphandler.NewApplicationHandler(appUC, l),
		PaymentHandler:     payhandler.NewPaymentHandler(payUC, l),
		Ready: func(ctx context.Context) error {
			_, err := store.Get(ctx, statsKey)
			if errors.Is(err, kv.ErrNotFound) {
				return nil
			}
			return err
		},
	}
}
