package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

// state is the shared in-memory backing for all fake stores, guarded by one
// mutex so concurrent tests see consistent snapshots.
type state struct {
	mu          sync.Mutex
	users       map[uuid.UUID]domain.User
	posts       map[uuid.UUID]domain.Post
	reports     map[uuid.UUID]domain.Report
	validations []domain.Validation
	outbox      []ports.OutboxEvent
}

func newState() *state {
	return &state{
		users:   make(map[uuid.UUID]domain.User),
		posts:   make(map[uuid.UUID]domain.Post),
		reports: make(map[uuid.UUID]domain.Report),
	}
}

func (st *state) eventsOfType(eventType string) []ports.OutboxEvent {
	st.mu.Lock()
	defer st.mu.Unlock()
	var out []ports.OutboxEvent
	for _, e := range st.outbox {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type memUsers struct{ st *state }

func (m *memUsers) FindByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	u, ok := m.st.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) FindByMatricule(_ context.Context, matricule string) (domain.User, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, u := range m.st.users {
		if u.Matricule == matricule {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *memUsers) Save(_ context.Context, user domain.User) (domain.User, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	m.st.users[user.UserID] = user
	return user, nil
}

type memPosts struct{ st *state }

func (m *memPosts) FindByID(_ context.Context, postID uuid.UUID) (domain.Post, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	p, ok := m.st.posts[postID]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return p, nil
}

func (m *memPosts) Save(_ context.Context, post domain.Post) (domain.Post, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	m.st.posts[post.PostID] = post
	return post, nil
}

func (m *memPosts) Delete(_ context.Context, postID uuid.UUID) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	if _, ok := m.st.posts[postID]; !ok {
		return domain.ErrPostNotFound
	}
	delete(m.st.posts, postID)
	return nil
}

func (m *memPosts) UpdateStatus(_ context.Context, postID uuid.UUID, status domain.PostStatus) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	p, ok := m.st.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Status = status
	p.Version++
	m.st.posts[postID] = p
	return nil
}

func (m *memPosts) UpdateStatusIfVersion(_ context.Context, postID uuid.UUID, fromVersion int, status domain.PostStatus) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	p, ok := m.st.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	if p.Version != fromVersion {
		return domain.ErrVersionConflict
	}
	p.Status = status
	p.Version++
	m.st.posts[postID] = p
	return nil
}

func (m *memPosts) ExistsByExternalID(_ context.Context, externalID string) (bool, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, p := range m.st.posts {
		if p.ExternalID != "" && p.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPosts) ListPublished(_ context.Context, limit int) ([]domain.Post, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	var out []domain.Post
	for _, p := range m.st.posts {
		if p.Status == domain.PostStatusPublished {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type memReports struct{ st *state }

func (m *memReports) FindByID(_ context.Context, reportID uuid.UUID) (domain.Report, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	r, ok := m.st.reports[reportID]
	if !ok {
		return domain.Report{}, domain.ErrReportNotFound
	}
	return r, nil
}

func (m *memReports) Save(_ context.Context, report domain.Report) (domain.Report, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, existing := range m.st.reports {
		if existing.ReporterID == report.ReporterID && existing.PostID == report.PostID {
			return domain.Report{}, domain.ErrDuplicateReport
		}
	}
	m.st.reports[report.ReportID] = report
	return report, nil
}

func (m *memReports) UpdateStatus(_ context.Context, reportID uuid.UUID, status domain.ReportStatus) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	r, ok := m.st.reports[reportID]
	if !ok {
		return domain.ErrReportNotFound
	}
	r.Status = status
	m.st.reports[reportID] = r
	return nil
}

func (m *memReports) CountForPost(_ context.Context, postID uuid.UUID) (int, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	count := 0
	for _, r := range m.st.reports {
		if r.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *memReports) ExistsByReporterAndPost(_ context.Context, reporterID, postID uuid.UUID) (bool, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, r := range m.st.reports {
		if r.ReporterID == reporterID && r.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

type memValidations struct{ st *state }

func (m *memValidations) Save(_ context.Context, validation domain.Validation) (domain.Validation, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, v := range m.st.validations {
		if v.ValidatorID == validation.ValidatorID && v.PostID == validation.PostID {
			return domain.Validation{}, domain.ErrDoubleValidation
		}
	}
	m.st.validations = append(m.st.validations, validation)
	return validation, nil
}

func (m *memValidations) HasVoted(_ context.Context, validatorID, postID uuid.UUID) (bool, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, v := range m.st.validations {
		if v.ValidatorID == validatorID && v.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memValidations) CountByType(_ context.Context, postID uuid.UUID, t domain.ValidationType) (int, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	count := 0
	for _, v := range m.st.validations {
		if v.PostID == postID && v.Type == t {
			count++
		}
	}
	return count, nil
}

type memOutbox struct{ st *state }

func (m *memOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	m.st.outbox = append(m.st.outbox, event)
	return nil
}

func (m *memOutbox) FetchUnpublished(_ context.Context, _ int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (m *memOutbox) MarkPublished(_ context.Context, _ uuid.UUID, _ time.Time) error { return nil }

func (m *memOutbox) MarkFailed(_ context.Context, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}

// memUnitOfWork runs fn against the same shared state. The fakes have no
// rollback; failure-path tests assert on returned errors instead.
type memUnitOfWork struct{ stores ports.Stores }

func (u *memUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Stores) error) error {
	return fn(ctx, u.stores)
}

type memCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCache() *memCache { return &memCache{values: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type fakeProvider struct {
	name          string
	establishment *domain.Establishment
	items         []ports.InboundItem
	err           error
}

func (p *fakeProvider) SourceName() string { return p.name }

func (p *fakeProvider) TargetEstablishment() *domain.Establishment { return p.establishment }

func (p *fakeProvider) FetchLatest(_ context.Context) ([]ports.InboundItem, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.items, nil
}

type fixture struct {
	st      *state
	cache   *memCache
	service *Service
}

func newFixture(providers ...ports.ExternalInformationProvider) *fixture {
	st := newState()
	cache := newMemCache()
	stores := ports.Stores{
		Users:       &memUsers{st: st},
		Posts:       &memPosts{st: st},
		Reports:     &memReports{st: st},
		Validations: &memValidations{st: st},
		Outbox:      &memOutbox{st: st},
	}
	service := NewService(Dependencies{
		Users:       stores.Users,
		Posts:       stores.Posts,
		Reports:     stores.Reports,
		Validations: stores.Validations,
		UnitOfWork:  &memUnitOfWork{stores: stores},
		Outbox:      stores.Outbox,
		Cache:       cache,
		Providers:   providers,
	})
	return &fixture{st: st, cache: cache, service: service}
}

func (f *fixture) addUser(role domain.Role, score int) domain.User {
	u := domain.User{
		UserID:     uuid.New(),
		Matricule:  "MAT-" + uuid.NewString()[:8],
		FullName:   "Test User",
		Department: domain.DepartmentComputerScience,
		Level:      "L3",
		Role:       role,
		TrustScore: domain.TrustScore(score),
	}
	f.st.mu.Lock()
	f.st.users[u.UserID] = u
	f.st.mu.Unlock()
	return u
}

func (f *fixture) addPost(authorID uuid.UUID, status domain.PostStatus) domain.Post {
	p := domain.Post{
		PostID:   uuid.New(),
		AuthorID: authorID,
		Title:    "Exam schedule change",
		Content:  "The L3 algorithms exam moves to Friday.",
		Category: domain.PostCategoryInfo,
		Status:   status,
		Source:   domain.PostSourceCommunity,
	}
	f.st.mu.Lock()
	f.st.posts[p.PostID] = p
	f.st.mu.Unlock()
	return p
}

func (f *fixture) post(postID uuid.UUID) domain.Post {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.posts[postID]
}

func (f *fixture) user(userID uuid.UUID) domain.User {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.users[userID]
}
