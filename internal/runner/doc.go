// Package runner — демон выполнения executions.
//
// Раннер получает события execution.pending из RabbitMQ, загружает
// execution и спецификацию пайплайна с платформы, разворачивает
// ссылочные inputs в доменные объекты, выполняет шаги и фиксирует
// терминальный статус. Метрики экспортируются в Prometheus.
package runner
