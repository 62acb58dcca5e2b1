package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventName определяет закрытый набор доменных событий
type EventName string

const (
	// События задач
	EventTodoCreated EventName = "TodoCreated"
	EventTodoUpdated EventName = "TodoUpdated"
	EventTodoDeleted EventName = "TodoDeleted"

	// События состава команды
	EventMemberJoined EventName = "MemberJoined"
	EventMemberLeft   EventName = "MemberLeft"

	// События журнала
	EventActivityAdded EventName = "ActivityAdded"

	// Служебные события
	EventError EventName = "Error"
	EventPing  EventName = "Ping"
)

// Event — единый конверт исходящего события. Форма полезной нагрузки
// фиксирована для каждого имени события, произвольных объектов нет.
type Event struct {
	Event     EventName       `json:"event"`
	Room      string          `json:"room,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// TeamRoom строит идентификатор комнаты по id команды
func TeamRoom(teamID uint) string {
	return fmt.Sprintf("team_%d", teamID)
}

// InboundMessage — команда от клиента по WebSocket
type InboundMessage struct {
	Type   string `json:"type"`
	TeamID uint   `json:"team_id,omitempty"`
}

const (
	// Типы входящих команд
	TypeRoomJoin  = "room_join"
	TypeRoomLeave = "room_leave"
	TypePong      = "pong"
)
