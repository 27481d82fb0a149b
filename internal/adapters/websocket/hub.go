package websocket

import (
	"encoding/json"
	"sync"

	"microquiz/internal/infra/logger"
)

// HubMessage envolve a mensagem e o cliente remetente.
type HubMessage struct {
	Client  *Client
	Content Envelope
}

// Hub implementa ports.RealTimeHub.
type Hub struct {
	sessions   map[string]map[*Client]bool
	unregister chan *Client

	// IncomingMsgs é o canal onde o Hub recebe intenções dos clientes
	IncomingMsgs chan HubMessage

	// Handler processa eventos de negócio (injetado via setter ou campo)
	EventHandler func(*Client, Envelope)

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		unregister:   make(chan *Client),
		sessions:     make(map[string]map[*Client]bool),
		IncomingMsgs: make(chan HubMessage),
	}
}

// BroadcastToSession envia a mensagem para todas as conexões da sessão.
// Clientes com buffer cheio perdem a mensagem; o próximo estado os atualiza.
func (h *Hub) BroadcastToSession(sessionID string, message interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		logger.Error("Erro ao serializar broadcast", "erro", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessions[sessionID] {
		select {
		case client.Send <- bytes:
		default:
			logger.Warn("Buffer do cliente cheio, mensagem descartada", "sessao", sessionID)
		}
	}
}

// subscribe inscreve o cliente de forma síncrona: ao retornar, o próximo
// broadcast da sessão já chega a ele.
func (h *Hub) subscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[client.SessionID]; !ok {
		h.sessions[client.SessionID] = make(map[*Client]bool)
	}
	h.sessions[client.SessionID][client] = true
}

// Clients retorna quantas conexões estão inscritas na sessão.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.sessions[client.SessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.sessions, client.SessionID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.IncomingMsgs:
			// Delega para o handler de negócio, em ordem de chegada
			if h.EventHandler != nil {
				h.EventHandler(msg.Client, msg.Content)
			}
		}
	}
}
