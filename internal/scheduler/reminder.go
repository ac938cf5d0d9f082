package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/repo"
)

// Mailer - внешний транспорт доставки писем
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, to, subject, body string) error
}

// ReminderWindow - напоминание уходит, когда до дедлайна осталось меньше 5 минут
const ReminderWindow = 5 * time.Minute

type Reminder struct {
	tasks    repo.TaskRepository
	users    repo.UserRepository
	mailer   Mailer
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewReminder(tasks repo.TaskRepository, users repo.UserRepository, mailer Mailer, logger *zap.Logger, interval time.Duration) *Reminder {
	return &Reminder{
		tasks:    tasks,
		users:    users,
		mailer:   mailer,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *Reminder) Start(ctx context.Context) {
	s.logger.Info("Starting reminder scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *Reminder) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	close(s.stop)
	s.wg.Wait()
	s.logger.Info("Reminder scheduler stopped")
}

func (s *Reminder) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

// cycle - один проход: найти взведенные задачи, отправить попавшие в окно, снять флаг
func (s *Reminder) cycle(ctx context.Context) {
	now := time.Now()

	tasks, err := s.tasks.ListArmedReminders(ctx)
	if err != nil {
		s.logger.Error("reminder scan failed", zap.Error(err))
		return
	}

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		left := t.DueDate.Sub(now)
		if left <= 0 || left >= ReminderWindow {
			continue
		}

		if s.mailer.Configured() {
			user, err := s.users.Get(ctx, t.UserID)
			if err != nil {
				s.logger.Error("reminder owner lookup failed",
					zap.Int64("task_id", t.ID), zap.Error(err))
			} else {
				body := fmt.Sprintf("Reminder: %s\nDue at %s\n\n%s",
					t.Title, t.DueDate.Format("2006-01-02 15:04"), t.Description)

				// Ошибка доставки только логируется, повторов в этом цикле нет
				if err := s.mailer.Send(ctx, user.Email, "Task Reminder", body); err != nil {
					s.logger.Error("reminder send failed",
						zap.Int64("task_id", t.ID), zap.Error(err))
				} else {
					s.logger.Info("reminder sent",
						zap.Int64("task_id", t.ID), zap.String("to", user.Email))
				}
			}
		}

		// Окно замечено - флаг снимается независимо от результата доставки
		if err := s.tasks.DisarmReminder(ctx, t.ID); err != nil {
			s.logger.Error("reminder disarm failed",
				zap.Int64("task_id", t.ID), zap.Error(err))
		}
	}
}
