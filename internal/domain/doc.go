// Package domain содержит сущности платформы Annotata.
//
// Сущности — это локальные представления ресурсов платформы
// (проекты, датасеты, items, аннотации, dpk-приложения, пайплайны,
// executions, триггеры). Они сериализуются в JSON в том виде,
// в котором их отдаёт и принимает REST API платформы.
//
// Сущности не делают сетевых вызовов — за это отвечают
// репозитории (internal/repos).
package domain
