package api

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/preferences"
	"assignment-tracker/internal/services"
)

// Result describes the outcome of a dispatched action. Only the fields
// relevant to the action are set.
type Result struct {
	Action string `json:"action"`
	// Assignment is the added, toggled or deleted assignment.
	Assignment *domain.Assignment `json:"assignment,omitempty"`
	// Assignments is the collection after a sort.
	Assignments []domain.Assignment `json:"assignments,omitempty"`
	// Changed is false when the action left the collection as it was,
	// e.g. deleting an id that does not exist.
	Changed bool `json:"changed"`
	// Month is the displayed month after navigation.
	Month services.MonthCursor `json:"month"`
}

// API is the single entry point for the view. Mutations arrive as actions
// through Dispatch; everything else is a read projection of current state.
type API interface {
	Dispatch(ctx context.Context, action domain.Action) (*Result, error)

	// Read projections
	ListAssignments(ctx context.Context, filter services.Filter) ([]domain.Assignment, error)
	Statistics(ctx context.Context) services.Stats
	Calendar(ctx context.Context) *services.CalendarGrid
	CurrentMonth() services.MonthCursor
	ShowMonth(year int, month time.Month) services.MonthCursor
	Resolve(ctx context.Context, idOrPrefix string) (*domain.Assignment, error)

	// Preferences
	Theme(ctx context.Context) preferences.Theme
	SetTheme(ctx context.Context, theme preferences.Theme) error
	ToggleTheme(ctx context.Context) (preferences.Theme, error)

	// Time returns the formatter for dates shown to the user.
	Time() services.TimeService
}

type apiImpl struct {
	store    services.Store
	calendar *services.CalendarService
	time     services.TimeService
	prefs    *preferences.Service
	logger   *zap.Logger
}

// New creates a new API instance over the given services.
func New(container *services.ServiceContainer, prefs *preferences.Service, logger *zap.Logger) API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &apiImpl{
		store:    container.Store,
		calendar: container.Calendar,
		time:     container.TimeService,
		prefs:    prefs,
		logger:   logger,
	}
}

// Dispatch applies one action. Unknown action types are rejected.
func (a *apiImpl) Dispatch(ctx context.Context, action domain.Action) (*Result, error) {
	if action == nil {
		return nil, errors.NewInvalidInputError("action", nil, "action cannot be nil")
	}
	a.logger.Debug("dispatching action", zap.String("action", action.ActionName()))

	result := &Result{Action: action.ActionName()}
	switch act := action.(type) {
	case domain.AddAction:
		created, err := a.store.Add(ctx, act.Input)
		if err != nil {
			return nil, err
		}
		result.Assignment = created
		result.Changed = true

	case domain.ToggleAction:
		toggled, err := a.store.ToggleComplete(ctx, act.ID)
		if err != nil {
			return nil, err
		}
		result.Assignment = toggled
		result.Changed = true

	case domain.DeleteAction:
		existing, err := a.store.Get(act.ID)
		if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		if err := a.store.Delete(ctx, act.ID); err != nil {
			return nil, err
		}
		result.Assignment = existing
		result.Changed = existing != nil

	case domain.SortAction:
		sorted, err := a.store.Sort(ctx, act.Strategy)
		if err != nil {
			return nil, err
		}
		result.Assignments = sorted
		result.Changed = true

	case domain.NavigateMonthAction:
		result.Month = a.calendar.Navigate(act.Delta)
		result.Changed = act.Delta != 0

	default:
		return nil, errors.NewInvalidInputError("action", fmt.Sprintf("%T", action), "unsupported action")
	}

	if result.Month == (services.MonthCursor{}) {
		result.Month = a.calendar.Cursor()
	}
	return result, nil
}

func (a *apiImpl) ListAssignments(ctx context.Context, filter services.Filter) ([]domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError("list assignments", err)
	}
	return services.FilterAssignmentsAt(a.store.List(), filter, a.time.Now()), nil
}

func (a *apiImpl) Statistics(ctx context.Context) services.Stats {
	return services.ComputeStatsAt(a.store.List(), a.time.Now())
}

func (a *apiImpl) Calendar(ctx context.Context) *services.CalendarGrid {
	return a.calendar.Project(a.store.List())
}

func (a *apiImpl) CurrentMonth() services.MonthCursor {
	return a.calendar.Cursor()
}

func (a *apiImpl) ShowMonth(year int, month time.Month) services.MonthCursor {
	return a.calendar.SetCursor(services.MonthCursor{Year: year, Month: month})
}

func (a *apiImpl) Resolve(ctx context.Context, idOrPrefix string) (*domain.Assignment, error) {
	return a.store.Resolve(idOrPrefix)
}

func (a *apiImpl) Theme(ctx context.Context) preferences.Theme {
	return a.prefs.Theme(ctx)
}

func (a *apiImpl) SetTheme(ctx context.Context, theme preferences.Theme) error {
	return a.prefs.SetTheme(ctx, theme)
}

func (a *apiImpl) ToggleTheme(ctx context.Context) (preferences.Theme, error) {
	return a.prefs.ToggleTheme(ctx)
}

func (a *apiImpl) Time() services.TimeService {
	return a.time
}
