// Package mq — инфраструктура обмена сообщениями через RabbitMQ.
//
// Структура:
//   - connection.go — соединение с reconnect и graceful shutdown
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация событий executions
//   - consumer.go   — потребление сообщений раннером
//
// Типы сообщений:
//   - execution.pending   — execution создан и ждёт раннера
//   - execution.completed — execution завершён (SUCCEEDED или FAILED)
//
// Exchanges:
//   - annotata.executions — события executions
//   - annotata.dlq        — dead letter queue
package mq
