// Package pipeline реализует механизм выполнения пайплайнов.
//
// Пайплайн — это упорядоченный список шагов, связанных через общий
// словарь значений (Context). Каждый шаг описывается спецификацией
// (StepSpec): kind определяет операцию, inputs связывают параметры
// операции с ключами контекста, outputs задают ключи, под которыми
// сохраняются результаты. Дескриптор без inputs и outputs принимает
// встроенную форму kind'а: например, голый items.get читает dataset
// и item_id и пишет item.
//
// Схема выполнения шага:
//
//  1. Проверка, что все ref-inputs присутствуют в контексте.
//  2. Поиск primary-объекта — единственного input'а с зарезервированным
//     именем kind'а (project, dataset, items).
//  3. Сборка kwargs: статические kwargs спецификации плюс значения
//     остальных inputs.
//  4. Вызов платформенной операции.
//  5. Запись результатов по ключам outputs. Количество результатов
//     обязано совпадать с количеством outputs.
//
// До успешного завершения шаг не изменяет контекст: любой сбой
// на шагах 1-4 оставляет словарь нетронутым.
//
// Значения контекста — закрытое множество вариантов (Value):
// object, list, string, record. Вариант проверяется при чтении
// по объявленному в спецификации типу.
//
// Executor выполняет шаги строго последовательно и останавливается
// на первой ошибке. Ошибки платформенных операций возвращаются без
// оборачивания. Новые kind'ы добавляются через Registry.
package pipeline
