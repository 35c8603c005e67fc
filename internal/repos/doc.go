// Package repos — репозитории ресурсов платформы.
//
// Каждый репозиторий оборачивает HTTP клиент и работает с одним
// типом ресурса: проекты, датасеты, items, аннотации, dpk-пакеты,
// пайплайны, executions, триггеры. Репозитории items, datasets и
// annotations реализуют интерфейсы шагов пайплайна.
package repos
