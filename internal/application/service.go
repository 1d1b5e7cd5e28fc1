package application

import (
	"time"

	"github.com/nde-labs/campusecho/internal/ports"
)

// Service holds only injected collaborators and immutable config, so one
// instance is safe to share across concurrent requests.
type Service struct {
	cfg         Config
	users       ports.UserDirectory
	posts       ports.PostStore
	reports     ports.ReportStore
	validations ports.ValidationStore
	uow         ports.UnitOfWork
	outbox      ports.OutboxRepository
	cache       ports.Cache
	providers   []ports.ExternalInformationProvider
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Users       ports.UserDirectory
	Posts       ports.PostStore
	Reports     ports.ReportStore
	Validations ports.ValidationStore
	UnitOfWork  ports.UnitOfWork
	Outbox      ports.OutboxRepository
	Cache       ports.Cache
	Providers   []ports.ExternalInformationProvider
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "campusecho"
	}
	if cfg.StatusWriteRetries <= 0 {
		cfg.StatusWriteRetries = 3
	}
	if cfg.FeedCacheTTL <= 0 {
		cfg.FeedCacheTTL = 30 * time.Second
	}
	if cfg.FeedPageSize <= 0 {
		cfg.FeedPageSize = 50
	}

	return &Service{
		cfg:         cfg,
		users:       deps.Users,
		posts:       deps.Posts,
		reports:     deps.Reports,
		validations: deps.Validations,
		uow:         deps.UnitOfWork,
		outbox:      deps.Outbox,
		cache:       deps.Cache,
		providers:   deps.Providers,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}
