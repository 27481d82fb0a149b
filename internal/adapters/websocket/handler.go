package websocket

import (
	"encoding/json"
	"errors"
	"net/http"

	"microquiz/internal/application/usecases"
	"microquiz/internal/infra/logger"
)

// Tipos de evento aceitos do cliente.
const (
	EventSelectOption = "select_option"
	EventSubmitAnswer = "submit_answer"
	EventAdvance      = "advance"
	EventRestart      = "restart"
	EventError        = "error"
)

// WebSocketHandler gerencia o upgrade e o roteamento de eventos.
type WebSocketHandler struct {
	hub       *Hub
	sessionUC *usecases.SessionUseCases
}

func NewWebSocketHandler(hub *Hub, sessionUC *usecases.SessionUseCases) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:       hub,
		sessionUC: sessionUC,
	}

	// Registra o callback no Hub
	hub.EventHandler = handler.HandleEvent
	return handler
}

// HandleWS faz o upgrade da conexão HTTP para WebSocket.
// Query: sessionId e token (o mesmo devolvido ao criar a sessão).
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	token := r.URL.Query().Get("token")
	if sessionID == "" || token == "" {
		http.Error(w, "sessionId e token são obrigatórios", http.StatusBadRequest)
		return
	}

	if err := h.sessionUC.Authorize(token, sessionID); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, usecases.ErrSessionForbidden) {
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return
	}

	if _, err := h.sessionUC.Get(sessionID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Erro no upgrade do WebSocket", "erro", err)
		return
	}

	client := &Client{
		Hub:       h.hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessionID,
	}

	// Inscreve antes de pedir o estado: uma transição no meio do caminho
	// chega pelo broadcast e o Refresh entra na fila depois dela.
	h.hub.subscribe(client)

	go client.writePump()
	go client.readPump()

	if err := h.sessionUC.Refresh(sessionID); err != nil {
		logger.Warn("Sessão removida durante a conexão", "sessao", sessionID, "erro", err)
	}
}

// HandleEvent processa mensagens vindas dos clientes (Router de Eventos).
// O novo estado chega a todos os clientes pelo listener da sessão.
func (h *WebSocketHandler) HandleEvent(client *Client, msg Envelope) {
	var err error

	switch msg.Type {
	case EventSelectOption:
		var payload struct {
			Index *int `json:"index"`
		}
		if err = json.Unmarshal(msg.Payload, &payload); err == nil {
			if payload.Index == nil {
				err = errors.New("index é obrigatório")
			} else {
				_, err = h.sessionUC.SelectOption(client.SessionID, *payload.Index)
			}
		}

	case EventSubmitAnswer:
		_, err = h.sessionUC.SubmitAnswer(client.SessionID)

	case EventAdvance:
		_, err = h.sessionUC.Advance(client.SessionID)

	case EventRestart:
		_, err = h.sessionUC.Restart(client.SessionID)

	default:
		logger.Debug("Evento desconhecido", "tipo", msg.Type)
		err = errors.New("evento desconhecido: " + msg.Type)
	}

	if err != nil {
		h.sendError(client, err.Error())
	}
}

func (h *WebSocketHandler) sendError(client *Client, errorMsg string) {
	bytes, err := json.Marshal(map[string]interface{}{
		"type":    EventError,
		"payload": errorMsg,
	})
	if err != nil {
		return
	}

	h.hub.mu.RLock()
	defer h.hub.mu.RUnlock()
	if h.hub.sessions[client.SessionID][client] {
		select {
		case client.Send <- bytes:
		default:
		}
	}
}
