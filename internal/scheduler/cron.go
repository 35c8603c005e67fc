package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/Annotata/internal/domain"
)

// ErrNoSchedule — триггер не задаёт ни cron, ни интервал.
var ErrNoSchedule = errors.New("trigger has neither cron_expr nor interval_sec")

// cronParser — стандартный 5-польный cron (минута..день недели).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextDue вычисляет следующее время срабатывания триггера.
//
// Для cron учитывается таймзона триггера, невалидная таймзона
// заменяется на UTC. Результат всегда в UTC.
func NextDue(trigger *domain.Trigger, from time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(trigger.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := from.In(loc)

	if trigger.IsCron() {
		schedule, err := cronParser.Parse(trigger.CronExpr)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse cron expression %q: %w", trigger.CronExpr, err)
		}
		return schedule.Next(local).UTC(), nil
	}
	if trigger.IsInterval() {
		return local.Add(time.Duration(trigger.IntervalSec) * time.Second).UTC(), nil
	}
	return time.Time{}, ErrNoSchedule
}

// ValidateCronExpr проверяет корректность cron-выражения.
func ValidateCronExpr(expr string) error {
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}
