// Package telemetry содержит настройку structured logging (log/slog)
// для всех компонентов Annotata.
//
// Уровень и формат задаются переменными окружения LOG_LEVEL и LOG_FORMAT.
// Логгер можно передавать через context (WithLogger/FromContext) и
// обогащать идентификаторами через With* хелперы.
package telemetry
