package generate_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// UseCase use case для генерации слотов по шаблону недели
type UseCase struct {
	slotRepo     SlotRepository
	templates    TemplateProvider
	metrics      Metrics
	horizonDays  int
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс расписания, в нём определяется "сегодня".
func NewUseCase(
	slotRepo SlotRepository,
	templates TemplateProvider,
	metrics Metrics,
	horizonDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		templates:    templates,
		metrics:      metrics,
		horizonDays:  horizonDays,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает недостающие слоты в диапазоне.
// Существующие слоты не меняются: счётчики и блокировки остаются как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: from=%s, to=%s", req.From, req.To)

	now := uc.timeProvider.Now()
	today := types.NewDate(now.In(uc.location))

	// 1. Валидация диапазона
	if err := validateRange(req, today, uc.horizonDays); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Действующий шаблон
	template, err := uc.templates.Template(ctx)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get template: %v", err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	// 3. Слоты по шаблону
	slots, skipped := Generate(template, req.From, req.To)
	for _, day := range skipped {
		uc.logger.Warn("GenerateSlots: skipped %s: %s", day.Date, day.Reason)
	}

	// 4. Вставка только отсутствующих
	inserted, err := uc.slotRepo.InsertIfAbsent(ctx, slots, now)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to insert slots: %v", err)
		return nil, fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.AddGeneratedSlots(inserted)
	}

	uc.logger.Info("GenerateSlots: requested=%d, inserted=%d, skipped_days=%d", len(slots), inserted, len(skipped))

	return &Response{
		From:        req.From,
		To:          req.To,
		Requested:   len(slots),
		Inserted:    inserted,
		SkippedDays: skipped,
	}, nil
}

// Horizon диапазон от сегодня до конца горизонта
func (uc *UseCase) Horizon() *Request {
	today := types.NewDate(uc.timeProvider.Now().In(uc.location))
	return &Request{From: today, To: today.AddDays(uc.horizonDays)}
}
