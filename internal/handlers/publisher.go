package handlers

import (
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

// EventPublisher рассылает доменное событие подписчикам комнаты.
// Реализуется websocket.Hub; ошибок не возвращает — сбой доставки
// остается внутри рассылки и до вызывающего не доходит.
type EventPublisher interface {
	Publish(room string, event ws.EventName, payload interface{})
}
