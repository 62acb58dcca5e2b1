package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// room хранит подписчиков одной команды под собственным мьютексом,
// чтобы рассылка и churn в одной команде не тормозили остальные.
type room struct {
	mu      sync.RWMutex
	members map[uuid.UUID]*Client
}

func (r *room) add(client *Client) {
	r.mu.Lock()
	r.members[client.ID] = client
	r.mu.Unlock()
}

func (r *room) remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.members, id)
	r.mu.Unlock()
}

// snapshot возвращает копию списка подписчиков на момент вызова
func (r *room) snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.members))
	for _, c := range r.members {
		clients = append(clients, c)
	}
	return clients
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Комнаты по идентификатору team_<id>; создаются лениво при первом
	// входе и не удаляются — пустая комната просто молчит.
	rooms map[string]*room

	// roomsMu защищает только саму map комнат, не их содержимое
	roomsMu sync.RWMutex

	clientsMu sync.RWMutex

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[string]*room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for _, client := range h.clients {
		client.closeSend()
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMu.Lock()
	h.clients[client.ID] = client
	h.clientsMu.Unlock()

	log.Printf("Client registered: %s (User: %d)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMu.Lock()
	_, known := h.clients[client.ID]
	if known {
		delete(h.clients, client.ID)
	}
	h.clientsMu.Unlock()

	if !known {
		// Повторный разрыв того же соединения — no-op
		return
	}

	h.OnDisconnect(client)
	client.closeSend()

	log.Printf("Client unregistered: %s (User: %d)", client.ID, client.UserID)
}

// Join добавляет соединение в комнату. Идемпотентна: повторный вход
// ничего не меняет. Неизвестная комната создается на месте.
func (h *Hub) Join(client *Client, roomID string) {
	h.roomsMu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		r = &room{members: make(map[uuid.UUID]*Client)}
		h.rooms[roomID] = r
	}
	h.roomsMu.Unlock()

	r.add(client)
	client.addRoom(roomID)
}

// Leave убирает соединение из комнаты. Для неизвестной комнаты или
// не-участника — no-op, не ошибка.
func (h *Hub) Leave(client *Client, roomID string) {
	h.roomsMu.RLock()
	r, ok := h.rooms[roomID]
	h.roomsMu.RUnlock()

	if !ok {
		return
	}

	r.remove(client.ID)
	client.removeRoom(roomID)
}

// OnDisconnect убирает соединение из всех комнат, где оно состояло.
// Безопасен при повторном вызове для уже отключенного клиента.
func (h *Hub) OnDisconnect(client *Client) {
	for _, roomID := range client.RoomIDs() {
		h.Leave(client, roomID)
	}
}

// Subscribers возвращает копию списка подписчиков комнаты на момент вызова
func (h *Hub) Subscribers(roomID string) []uuid.UUID {
	h.roomsMu.RLock()
	r, ok := h.rooms[roomID]
	h.roomsMu.RUnlock()

	if !ok {
		return nil
	}

	clients := r.snapshot()
	ids := make([]uuid.UUID, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return ids
}

// Publish доставляет событие всем, кто подписан на комнату в момент вызова.
// Сбой доставки одному клиенту не мешает остальным и не виден вызывающему.
func (h *Hub) Publish(roomID string, event EventName, payload interface{}) {
	data, err := marshalEvent(roomID, event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event for %s: %v", event, roomID, err)
		return
	}

	h.roomsMu.RLock()
	r, ok := h.rooms[roomID]
	h.roomsMu.RUnlock()

	if !ok {
		return
	}

	for _, client := range r.snapshot() {
		if err := client.trySend(data); err != nil {
			log.Printf("Dropping %s event for client %s: %v", event, client.ID, err)
		}
	}
}

func marshalEvent(roomID string, event EventName, payload interface{}) ([]byte, error) {
	e := Event{
		Event:     event,
		Room:      roomID,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		e.Data = data
	}

	return json.Marshal(e)
}

func (h *Hub) ping() {
	data, err := marshalEvent("", EventPing, nil)
	if err != nil {
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for _, client := range h.clients {
		client.trySend(data)
	}
}

// OnlineClients возвращает количество активных соединений
func (h *Hub) OnlineClients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// RoomUsers возвращает id пользователей, подписанных на комнату
func (h *Hub) RoomUsers(roomID string) []uint {
	h.roomsMu.RLock()
	r, ok := h.rooms[roomID]
	h.roomsMu.RUnlock()

	if !ok {
		return nil
	}

	userMap := make(map[uint]bool)
	for _, c := range r.snapshot() {
		userMap[c.UserID] = true
	}

	users := make([]uint, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
