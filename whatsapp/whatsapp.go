// Package whatsapp implements a WhatsApp Business webhook router on gin:
// a subscription verification endpoint and an ingestion endpoint that
// dispatches inbound messages and status updates to registered handlers.
package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/overzetten/overzetten/internal/debug"
)

const signatureHeader = "X-Hub-Signature-256"

// Config configures the webhook router.
type Config struct {
	// VerifyToken is echoed back by the platform during subscription
	// verification.
	VerifyToken string

	// AppSecret, when set, enables HMAC-SHA256 signature verification of
	// ingestion payloads.
	AppSecret string

	// Prefix is the URL prefix for the webhook endpoints, "/webhook" by
	// default.
	Prefix string
}

// Handler processes one inbound message or status update. Handler errors are
// logged and do not stop delivery to the remaining handlers.
type Handler func(item map[string]any) error

// Payload is the envelope of an ingestion request. Entry is required;
// ingest rejects payloads without it after the signature check.
type Payload struct {
	Object string           `json:"object"`
	Entry  []map[string]any `json:"entry"`
}

// Router routes webhook traffic to registered handlers.
type Router struct {
	config          Config
	messageHandlers []Handler
	statusHandlers  []Handler
}

// New creates a webhook router.
func New(cfg Config) *Router {
	if cfg.Prefix == "" {
		cfg.Prefix = "/webhook"
	}
	return &Router{config: cfg}
}

// OnMessage registers a handler for inbound messages.
func (r *Router) OnMessage(h Handler) {
	r.messageHandlers = append(r.messageHandlers, h)
}

// OnStatusUpdate registers a handler for message status updates.
func (r *Router) OnStatusUpdate(h Handler) {
	r.statusHandlers = append(r.statusHandlers, h)
}

// Register mounts the webhook endpoints on a gin router.
func (r *Router) Register(engine gin.IRouter) {
	group := engine.Group(r.config.Prefix)
	group.GET("/", r.verify)
	group.POST("/", r.ingest)
}

// verify answers the platform's subscription handshake: subscribe mode with
// a matching token echoes the challenge, anything else is forbidden.
func (r *Router) verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == r.config.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	debug.Warn("Webhook verification rejected", "mode", mode)
	c.JSON(http.StatusForbidden, gin.H{"detail": "Forbidden"})
}

func (r *Router) ingest(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if r.config.AppSecret != "" {
		if !r.validSignature(body, c.GetHeader(signatureHeader)) {
			debug.Warn("Webhook signature mismatch")
			c.JSON(http.StatusForbidden, gin.H{"detail": "Invalid signature"})
			return
		}
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Entry == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	for _, entry := range payload.Entry {
		changes, ok := entry["changes"].([]any)
		if !ok {
			continue
		}
		for _, raw := range changes {
			change, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			field, _ := change["field"].(string)
			value, _ := change["value"].(map[string]any)

			switch field {
			case "messages":
				r.dispatch(r.messageHandlers, items(value, "messages"), "message")
			case "message_status":
				r.dispatch(r.statusHandlers, items(value, "statuses"), "status")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// dispatch invokes every handler for every item. A failing handler is logged
// and skipped so one faulty handler cannot block the rest of the batch.
func (r *Router) dispatch(handlers []Handler, list []map[string]any, kind string) {
	for _, item := range list {
		for _, handler := range handlers {
			if err := handler(item); err != nil {
				debug.Error("Webhook handler failed", "kind", kind, "error", err)
			}
		}
	}
}

// items extracts the named list of objects from a change value.
func items(value map[string]any, key string) []map[string]any {
	raw, ok := value[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// validSignature checks the sha256=<hex> signature header against an
// HMAC-SHA256 of the raw body.
func (r *Router) validSignature(body []byte, header string) bool {
	expected, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	mac := hmac.New(sha256.New, []byte(r.config.AppSecret))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(expected))
}
