package suggestion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/holiday"
	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/domain/trip"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
)

// Service regenerates suggestions after punch ingestion and serves them
// with read-time reconciliation. Regeneration serializes per
// (employee, month) key; two racing ingestions for the same key queue up
// instead of interleaving the delete-then-insert.
type Service struct {
	punchRepo      attendance.PunchRepository
	suggestionRepo attendance.SuggestionRepository
	holidayRepo    holiday.Repository
	overtimeRepo   overtime.Repository
	leaveRepo      leave.Repository
	tripRepo       trip.Repository
	settingsRepo   settings.Repository
	directory      directory.Service
	now            func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(
	punchRepo attendance.PunchRepository,
	suggestionRepo attendance.SuggestionRepository,
	holidayRepo holiday.Repository,
	overtimeRepo overtime.Repository,
	leaveRepo leave.Repository,
	tripRepo trip.Repository,
	settingsRepo settings.Repository,
	directorySvc directory.Service,
) *Service {
	return &Service{
		punchRepo:      punchRepo,
		suggestionRepo: suggestionRepo,
		holidayRepo:    holidayRepo,
		overtimeRepo:   overtimeRepo,
		leaveRepo:      leaveRepo,
		tripRepo:       tripRepo,
		settingsRepo:   settingsRepo,
		directory:      directorySvc,
		now:            time.Now,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *Service) Regenerate(ctx context.Context, employeeName, department string, year, month int) error {
	lock := s.keyLock(fmt.Sprintf("%s|%d-%02d", employeeName, year, month))
	lock.Lock()
	defer lock.Unlock()

	records, err := s.punchRepo.ListByEmployeeAndMonth(ctx, employeeName, year, month)
	if err != nil {
		return fmt.Errorf("list punch records: %w", err)
	}
	holidays, err := s.holidayRepo.ListByYear(ctx, year)
	if err != nil {
		return fmt.Errorf("list holidays: %w", err)
	}

	suggestions := Generate(Input{
		EmployeeName: employeeName,
		Department:   department,
		Year:         year,
		Month:        month,
		Records:      records,
		Calendar:     holiday.NewCalendar(holidays),
		Today:        s.now(),
	})

	if err := s.suggestionRepo.ReplaceForMonth(ctx, employeeName, department, year, month, suggestions); err != nil {
		return fmt.Errorf("replace suggestions: %w", err)
	}

	metrics.RegenerationRuns.Inc()
	metrics.SuggestionsGenerated.Add(float64(len(suggestions)))
	return nil
}

func (s *Service) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Service) ListSuggestions(ctx context.Context, employeeName string, year, month int) ([]attendance.SuggestionView, error) {
	suggestions, err := s.suggestionRepo.ListByEmployeeAndMonth(ctx, employeeName, year, month)
	if err != nil {
		return nil, err
	}
	return s.reconcileAll(ctx, suggestions)
}

// Exceptions serves the outstanding-anomalies report. The attendance admin
// reads every department; team leads and room directors read their own;
// everyone else is denied. Department Office rows never appear.
func (s *Service) Exceptions(ctx context.Context, viewer string, year, month int) ([]attendance.SuggestionView, error) {
	suggestions, err := s.exceptionsScope(ctx, viewer, year, month)
	if err != nil {
		return nil, err
	}

	views, err := s.reconcileAll(ctx, suggestions)
	if err != nil {
		return nil, err
	}

	outstanding := make([]attendance.SuggestionView, 0, len(views))
	for _, v := range views {
		if v.Department == directory.DepartmentOffice {
			continue
		}
		if v.Outstanding() {
			outstanding = append(outstanding, v)
		}
	}
	return outstanding, nil
}

func (s *Service) exceptionsScope(ctx context.Context, viewer string, year, month int) ([]attendance.Suggestion, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if cfg.AttendanceAdmin == viewer {
		return s.suggestionRepo.ListByMonth(ctx, year, month)
	}

	level, department, err := s.directory.ResolveScope(ctx, viewer)
	if err != nil {
		return nil, err
	}
	switch level {
	case directory.LevelTeamLead, directory.LevelRoomDirector, directory.LevelDeputyRoomDirector:
		return s.suggestionRepo.ListByDepartmentAndMonth(ctx, department, year, month)
	default:
		return nil, attendance.ErrExceptionsDenied
	}
}

// reconcileAll loads each distinct employee's requests once and reconciles
// every suggestion against them.
func (s *Service) reconcileAll(ctx context.Context, suggestions []attendance.Suggestion) ([]attendance.SuggestionView, error) {
	sets := make(map[string]RequestSet)
	views := make([]attendance.SuggestionView, 0, len(suggestions))

	for _, sg := range suggestions {
		set, ok := sets[sg.EmployeeName]
		if !ok {
			from := time.Date(sg.Year, time.Month(sg.Month), 1, 0, 0, 0, 0, time.UTC)
			to := from.AddDate(0, 1, 0)

			var err error
			if set.Overtimes, err = s.overtimeRepo.ListByApplicantInRange(ctx, sg.EmployeeName, from, to); err != nil {
				return nil, fmt.Errorf("list overtime requests: %w", err)
			}
			if set.Leaves, err = s.leaveRepo.ListByApplicantInRange(ctx, sg.EmployeeName, from, to); err != nil {
				return nil, fmt.Errorf("list leave requests: %w", err)
			}
			if set.Trips, err = s.tripRepo.ListByApplicantInRange(ctx, sg.EmployeeName, from, to); err != nil {
				return nil, fmt.Errorf("list business trip requests: %w", err)
			}
			sets[sg.EmployeeName] = set
		}
		views = append(views, Reconcile(sg, set))
	}
	return views, nil
}
