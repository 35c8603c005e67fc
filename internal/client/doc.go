// Package client — низкоуровневый HTTP клиент API платформы.
//
// Все ответы платформы упакованы в конверты: успешные — в data,
// списки — в data с total, ошибки — в error с кодом и сообщением.
// Статусы >= 400 превращаются в *PlatformError, классифицируемый
// хелперами IsNotFound/IsBadRequest/IsUnauthorized.
package client
