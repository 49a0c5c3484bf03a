package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/usecase/generate_slots"
)

// SlotGenerator генерация слотов на горизонт планирования
type SlotGenerator interface {
	Horizon() *generate_slots.Request
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// RequestExpirer проставляет статус expired просроченным заявкам на перенос
type RequestExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler фоновые задачи: генерация слотов и истечение заявок
type Scheduler struct {
	generator        SlotGenerator
	expirer          RequestExpirer
	generateInterval time.Duration
	expireInterval   time.Duration
	now              func() time.Time
	logger           Logger
}

func New(
	generator SlotGenerator,
	expirer RequestExpirer,
	generateInterval time.Duration,
	expireInterval time.Duration,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		generator:        generator,
		expirer:          expirer,
		generateInterval: generateInterval,
		expireInterval:   expireInterval,
		now:              time.Now,
		logger:           logger,
	}
}

// Start запускает обе задачи и блокируется до отмены ctx.
// Первый запуск каждой задачи происходит сразу, не дожидаясь тика.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started: generate every %s, expire every %s", s.generateInterval, s.expireInterval)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.generateInterval, s.generate)
	}()
	go func() {
		defer wg.Done()
		s.loop(ctx, s.expireInterval, s.expire)
	}()
	wg.Wait()

	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, job func(ctx context.Context)) {
	if ctx.Err() != nil {
		return
	}
	job(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}

func (s *Scheduler) generate(ctx context.Context) {
	resp, err := s.generator.Execute(ctx, s.generator.Horizon())
	if err != nil {
		s.logger.Error("scheduler: failed to generate slots: %v", err)
		return
	}
	if resp.Inserted > 0 || len(resp.SkippedDays) > 0 {
		s.logger.Info("scheduler: generated %d slots for %s..%s, skipped %d days",
			resp.Inserted, resp.From, resp.To, len(resp.SkippedDays))
	}
}

func (s *Scheduler) expire(ctx context.Context) {
	n, err := s.expirer.ExpireStale(ctx, s.now())
	if err != nil {
		s.logger.Error("scheduler: failed to expire reschedule requests: %v", err)
		return
	}
	if n > 0 {
		s.logger.Info("scheduler: expired %d reschedule requests", n)
	}
}
