package call

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/pkg/agent"
	"github.com/ceadash/cea-dashboard/pkg/email"
)

// fakeCallRepo is an in-memory ScheduledCallRepository mirroring the
// conditional-update semantics of the SQL implementation
type fakeCallRepo struct {
	mu    sync.Mutex
	calls map[uuid.UUID]*entities.ScheduledCall

	createErr error
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{calls: make(map[uuid.UUID]*entities.ScheduledCall)}
}

func (r *fakeCallRepo) Create(_ context.Context, call *entities.ScheduledCall) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *call
	r.calls[call.ID] = &cp
	return nil
}

func (r *fakeCallRepo) FindByID(_ context.Context, organizationID, id uuid.UUID) (*entities.ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return nil, entities.ErrCallNotFound
	}
	cp := *call
	return &cp, nil
}

func (r *fakeCallRepo) FindByCorrelation(_ context.Context, callID string) (*entities.ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, call := range r.calls {
		if call.CorrelationID == callID {
			cp := *call
			return &cp, nil
		}
	}
	for _, call := range r.calls {
		if call.AgentID != nil && *call.AgentID == callID {
			cp := *call
			return &cp, nil
		}
		if call.BotConnectionURL != nil && strings.Contains(*call.BotConnectionURL, callID) {
			cp := *call
			return &cp, nil
		}
	}
	return nil, entities.ErrCallNotFound
}

func (r *fakeCallRepo) List(_ context.Context, organizationID uuid.UUID, _ repositories.CallFilters) ([]*entities.ScheduledCall, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.ScheduledCall
	for _, call := range r.calls {
		if call.OrganizationID == organizationID {
			cp := *call
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCallRepo) Update(_ context.Context, call *entities.ScheduledCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.calls[call.ID]
	if !ok || existing.OrganizationID != call.OrganizationID {
		return entities.ErrCallNotFound
	}
	existing.ScheduledDate = call.ScheduledDate
	existing.Notes = call.Notes
	return nil
}

func (r *fakeCallRepo) Delete(_ context.Context, organizationID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if ok && call.OrganizationID == organizationID {
		delete(r.calls, id)
	}
	return nil
}

func (r *fakeCallRepo) MarkEmailSent(_ context.Context, organizationID, id uuid.UUID, emailID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return entities.ErrCallNotFound
	}
	call.EmailSent = true
	call.EmailID = &emailID
	return nil
}

func (r *fakeCallRepo) Start(_ context.Context, organizationID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return false, nil
	}
	if call.Status != entities.CallStatusScheduled {
		return false, nil
	}
	call.Status = entities.CallStatusInProgress
	return true, nil
}

func (r *fakeCallRepo) Finish(_ context.Context, organizationID, id uuid.UUID, status entities.CallStatus, durationMinutes *int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return false, nil
	}
	if call.Status.IsTerminal() {
		return false, nil
	}
	call.Status = status
	if durationMinutes != nil {
		call.DurationMinutes = durationMinutes
	}
	return true, nil
}

func (r *fakeCallRepo) AttachTranscription(_ context.Context, organizationID, id uuid.UUID, data entities.TranscriptionData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return entities.ErrCallNotFound
	}
	call.Transcription = &data
	return nil
}

func (r *fakeCallRepo) LinkProcess(_ context.Context, organizationID, id, processID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok || call.OrganizationID != organizationID {
		return false, nil
	}
	if call.ProcessID != nil {
		return false, nil
	}
	call.ProcessID = &processID
	return true, nil
}

func (r *fakeCallRepo) Stats(_ context.Context, organizationID uuid.UUID) (*repositories.CallStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.CallStats{}
	for _, call := range r.calls {
		if call.OrganizationID != organizationID {
			continue
		}
		stats.Total++
		switch call.Status {
		case entities.CallStatusScheduled:
			stats.Scheduled++
		case entities.CallStatusInProgress:
			stats.InProgress++
		case entities.CallStatusCompleted:
			stats.Completed++
		case entities.CallStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (r *fakeCallRepo) get(id uuid.UUID) *entities.ScheduledCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok {
		return nil
	}
	cp := *call
	return &cp
}

// fakeContactRepo is an in-memory ContactRepository
type fakeContactRepo struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]*entities.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[uuid.UUID]*entities.Contact)}
}

func (r *fakeContactRepo) Create(_ context.Context, contact *entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *fakeContactRepo) FindByID(_ context.Context, organizationID, id uuid.UUID) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok || contact.OrganizationID != organizationID {
		return nil, entities.ErrContactNotFound
	}
	cp := *contact
	return &cp, nil
}

func (r *fakeContactRepo) List(_ context.Context, organizationID uuid.UUID, _ repositories.ContactFilters) ([]*entities.Contact, int64, error) {
	return nil, 0, nil
}

func (r *fakeContactRepo) Update(_ context.Context, contact *entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contacts, id)
	return nil
}

func (r *fakeContactRepo) CountActive(_ context.Context, organizationID uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeTranscriptionRepo is an in-memory TranscriptionRepository
type fakeTranscriptionRepo struct {
	mu             sync.Mutex
	transcriptions []*entities.Transcription
	createErr      error
}

func (r *fakeTranscriptionRepo) Create(_ context.Context, transcription *entities.Transcription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *transcription
	r.transcriptions = append(r.transcriptions, &cp)
	return nil
}

func (r *fakeTranscriptionRepo) FindByID(_ context.Context, _, id uuid.UUID) (*entities.Transcription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tr := range r.transcriptions {
		if tr.ID == id {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeTranscriptionRepo) List(_ context.Context, _ uuid.UUID, _, _ int) ([]*entities.Transcription, error) {
	return nil, nil
}

func (r *fakeTranscriptionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transcriptions)
}

// fakeProcessRepo is an in-memory ProcessRepository
type fakeProcessRepo struct {
	mu        sync.Mutex
	processes map[uuid.UUID]*entities.Process
	createErr error
}

func newFakeProcessRepo() *fakeProcessRepo {
	return &fakeProcessRepo{processes: make(map[uuid.UUID]*entities.Process)}
}

func (r *fakeProcessRepo) Create(_ context.Context, process *entities.Process) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *process
	r.processes[process.ID] = &cp
	return nil
}

func (r *fakeProcessRepo) FindByID(_ context.Context, organizationID, id uuid.UUID) (*entities.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	process, ok := r.processes[id]
	if !ok || process.OrganizationID != organizationID {
		return nil, entities.ErrProcessNotFound
	}
	cp := *process
	return &cp, nil
}

func (r *fakeProcessRepo) FindByTranscription(_ context.Context, organizationID, transcriptionID uuid.UUID) (*entities.Process, error) {
	return nil, entities.ErrProcessNotFound
}

func (r *fakeProcessRepo) List(_ context.Context, _ uuid.UUID, _ repositories.ProcessFilters) ([]*entities.Process, int64, error) {
	return nil, 0, nil
}

func (r *fakeProcessRepo) Update(_ context.Context, process *entities.Process) error {
	return nil
}

func (r *fakeProcessRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.processes, id)
	return nil
}

func (r *fakeProcessRepo) Stats(_ context.Context, _ uuid.UUID) (*repositories.ProcessStats, error) {
	return &repositories.ProcessStats{}, nil
}

func (r *fakeProcessRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.processes)
}

// fakeActivityRepo records activity inserts
type fakeActivityRepo struct {
	mu         sync.Mutex
	activities []*entities.Activity
	createErr  error
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *entities.Activity) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *activity
	r.activities = append(r.activities, &cp)
	return nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, _ uuid.UUID, _ int) ([]*entities.Activity, error) {
	return nil, nil
}

func (r *fakeActivityRepo) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.activities))
	for _, a := range r.activities {
		out = append(out, a.ActivityType)
	}
	return out
}

// fakeOrgRepo serves a single organization
type fakeOrgRepo struct {
	org *entities.Organization
}

func (r *fakeOrgRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Organization, error) {
	if r.org == nil || r.org.ID != id {
		return nil, entities.ErrOrganizationNotFound
	}
	return r.org, nil
}

func (r *fakeOrgRepo) FindBySlug(_ context.Context, _ string) (*entities.Organization, error) {
	return nil, entities.ErrOrganizationNotFound
}

// fakeAgentProvider stands in for the ElevenLabs client
type fakeAgentProvider struct {
	createErr   error
	agentID     string
	link        string
	createCalls int
	lastConfig  agent.AgentConfig
}

func (p *fakeAgentProvider) BuildAgentConfig(setup agent.CallSetup, correlationID string) agent.AgentConfig {
	return agent.AgentConfig{
		Name:     "Agente CEA - " + setup.ProcessType,
		Metadata: map[string]string{"correlation_id": correlationID},
	}
}

func (p *fakeAgentProvider) CreateAgent(_ context.Context, cfg agent.AgentConfig) (string, error) {
	p.createCalls++
	p.lastConfig = cfg
	if p.createErr != nil {
		return "", p.createErr
	}
	if p.agentID == "" {
		return "agent-test", nil
	}
	return p.agentID, nil
}

func (p *fakeAgentProvider) GetAgentLink(_ context.Context, agentID string) (string, error) {
	if p.link == "" {
		return "https://example.com/join/" + agentID, nil
	}
	return p.link, nil
}

// fakeNotifier stands in for the Resend client
type fakeNotifier struct {
	sendErr  error
	lastSent *email.SchedulingEmail
	sent     int
}

func (n *fakeNotifier) AdminName() string { return "Equipo CEA" }

func (n *fakeNotifier) SendSchedulingEmail(_ context.Context, data email.SchedulingEmail) (string, error) {
	n.sent++
	n.lastSent = &data
	if n.sendErr != nil {
		return "", n.sendErr
	}
	return "email-test-1", nil
}

func newTestLogger() *zap.Logger { return zap.NewNop() }

// testEnv bundles a coordinator wired to fakes
type testEnv struct {
	coordinator *Coordinator
	calls       *fakeCallRepo
	contacts    *fakeContactRepo
	trans       *fakeTranscriptionRepo
	processes   *fakeProcessRepo
	activities  *fakeActivityRepo
	agents      *fakeAgentProvider
	notifier    *fakeNotifier

	orgID     uuid.UUID
	profileID uuid.UUID
	contact   *entities.Contact
}

func newTestEnv() *testEnv {
	env := &testEnv{
		calls:      newFakeCallRepo(),
		contacts:   newFakeContactRepo(),
		trans:      &fakeTranscriptionRepo{},
		processes:  newFakeProcessRepo(),
		activities: &fakeActivityRepo{},
		agents:     &fakeAgentProvider{},
		notifier:   &fakeNotifier{},
		orgID:      uuid.New(),
		profileID:  uuid.New(),
	}

	env.contact = &entities.Contact{
		ID:             uuid.New(),
		OrganizationID: env.orgID,
		Name:           "Carlos Mendoza",
		Email:          "carlos@example.com",
		Status:         entities.ContactStatusActive,
	}
	_ = env.contacts.Create(context.Background(), env.contact)

	org := &entities.Organization{ID: env.orgID, Name: "CEA", Slug: "cea"}
	env.coordinator = NewCoordinator(
		env.calls,
		env.contacts,
		env.trans,
		env.processes,
		env.activities,
		&fakeOrgRepo{org: org},
		env.agents,
		env.notifier,
		newTestLogger(),
		5*time.Second,
	)
	return env
}

func (env *testEnv) scheduleInput() ScheduleInput {
	return ScheduleInput{
		OrganizationID:  env.orgID,
		ProfileID:       env.profileID,
		ContactID:       env.contact.ID,
		ScheduledDate:   time.Now().Add(48 * time.Hour),
		DurationMinutes: 30,
		ProcessType:     "ventas",
		Industry:        "servicios",
	}
}
