// Package scheduler превращает триггеры в executions.
//
// Планировщик периодически опрашивает платформу на предмет
// сработавших триггеров, создаёт для них executions и сдвигает
// следующее время срабатывания по cron-выражению или интервалу.
package scheduler
