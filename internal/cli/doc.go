// Package cli — команды annotata CLI.
//
// Каждый ресурс платформы получает свою группу подкоманд
// (dataset, item, annotation, dpk, pipeline, execution, trigger).
// Команды получают API и Output через фабрики, чтобы флаги
// корневой команды применялись в момент запуска.
package cli
