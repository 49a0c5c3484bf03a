package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/schedule/models"
)

// Service шаблон недели: значения по умолчанию из конфигурации,
// поверх которых накладываются дни, сохранённые администратором
type Service struct {
	scheduleRepo ScheduleRepository
	defaults     domain.WeeklyTemplate
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	defaults domain.WeeklyTemplate,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		defaults:     defaults,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Template действующий шаблон недели
func (s *Service) Template(ctx context.Context) (domain.WeeklyTemplate, error) {
	overrides, err := s.scheduleRepo.List(ctx)
	if err != nil {
		s.logger.Error("Template: repository error: %v", err)
		return nil, fmt.Errorf("%w: Template - repository error: %v", ErrInternal, err)
	}

	return s.defaults.Merge(overrides), nil
}

// List шаблон недели для администратора, с понедельника по воскресенье
func (s *Service) List(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("List: fetching weekly schedule")

	overrides, err := s.scheduleRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	overridden := make(map[time.Weekday]bool, len(overrides))
	for _, day := range overrides {
		overridden[day.Weekday] = true
	}

	merged := s.defaults.Merge(overrides)
	resp := &models.ScheduleResponse{Days: make([]models.DayResponse, 0, 7)}
	for _, wd := range models.WeekOrder {
		day, ok := merged[wd]
		if !ok {
			day = domain.DayTemplate{Weekday: wd}
		}
		resp.Days = append(resp.Days, models.FromDomainDay(day, overridden[wd]))
	}

	return resp, nil
}

// UpdateDay сохраняет настройку дня недели. Уже сгенерированные слоты не меняются.
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpdateDay: weekday=%s, working=%t, starts=%v", req.Weekday, req.IsWorking, req.StartTimes)

	day, err := req.ToDomainDay(s.defaults)
	if err != nil {
		s.logger.Warn("UpdateDay: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := day.Validate(); err != nil {
		s.logger.Warn("UpdateDay: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day.UpdatedAt = s.timeProvider.Now()

	saved, err := s.scheduleRepo.Upsert(ctx, day)
	if err != nil {
		s.logger.Error("UpdateDay: repository error for %s: %v", day.Weekday, err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: saved %s", saved.Weekday)
	resp := models.FromDomainDay(*saved, true)
	return &resp, nil
}
