package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/cache"
)

// cacheTTL bounds staleness of the dashboard numbers
const cacheTTL = 60 * time.Second

// Dashboard is the aggregated stats payload for an organization
type Dashboard struct {
	TotalProcesses    int64 `json:"total_processes"`
	ActiveProcesses   int64 `json:"active_processes"`
	ScheduledCalls    int64 `json:"scheduled_calls"`
	CallsInProgress   int64 `json:"calls_in_progress"`
	CompletedCalls    int64 `json:"completed_calls"`
	ActiveContacts    int64 `json:"active_contacts"`
	AverageEfficiency int   `json:"average_efficiency"`
	AverageDuration   int   `json:"average_duration_minutes"`
}

// Service aggregates dashboard stats with a short-lived cache in front. Cache
// failures degrade to direct queries, never to request failures.
type Service struct {
	calls      repositories.ScheduledCallRepository
	processes  repositories.ProcessRepository
	contacts   repositories.ContactRepository
	activities repositories.ActivityRepository
	store      cache.Store
	logger     *zap.Logger
}

// NewService creates a new stats service
func NewService(
	calls repositories.ScheduledCallRepository,
	processes repositories.ProcessRepository,
	contacts repositories.ContactRepository,
	activities repositories.ActivityRepository,
	store cache.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		calls:      calls,
		processes:  processes,
		contacts:   contacts,
		activities: activities,
		store:      store,
		logger:     logger,
	}
}

// Dashboard returns the aggregated stats for an organization
func (s *Service) Dashboard(ctx context.Context, organizationID uuid.UUID) (*Dashboard, error) {
	key := "stats:dashboard:" + organizationID.String()

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("stats cache read failed", zap.Error(err))
	} else if ok {
		var dashboard Dashboard
		if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
			return &dashboard, nil
		}
		// Drop the unreadable entry and recompute
		_ = s.store.Delete(ctx, key)
	}

	dashboard, err := s.compute(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(dashboard); err == nil {
		if err := s.store.Set(ctx, key, string(b), cacheTTL); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}

	return dashboard, nil
}

func (s *Service) compute(ctx context.Context, organizationID uuid.UUID) (*Dashboard, error) {
	callStats, err := s.calls.Stats(ctx, organizationID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	processStats, err := s.processes.Stats(ctx, organizationID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	activeContacts, err := s.contacts.CountActive(ctx, organizationID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	return &Dashboard{
		TotalProcesses:    processStats.Total,
		ActiveProcesses:   processStats.Active,
		ScheduledCalls:    callStats.Scheduled,
		CallsInProgress:   callStats.InProgress,
		CompletedCalls:    callStats.Completed,
		ActiveContacts:    activeContacts,
		AverageEfficiency: processStats.AverageEfficiency,
		AverageDuration:   callStats.AverageDuration,
	}, nil
}

// RecentActivity returns the most recent feed entries for an organization
func (s *Service) RecentActivity(ctx context.Context, organizationID uuid.UUID, limit int) ([]*entities.Activity, error) {
	activities, err := s.activities.ListRecent(ctx, organizationID, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return activities, nil
}
