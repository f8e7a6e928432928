package websocket

import (
	"testing"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
)

func newTestClient(enterpriseID, role string) *Client {
	return &Client{
		Send:         make(chan []byte, 1),
		EnterpriseID: enterpriseID,
		Role:         role,
	}
}

func received(c *Client) bool {
	select {
	case <-c.Send:
		return true
	default:
		return false
	}
}

func TestDeliverScopesEventsToEnterprise(t *testing.T) {
	entA := uuid.NewString()
	entB := uuid.NewString()

	sameTenant := newTestClient(entA, model.RoleEnterprise)
	otherTenant := newTestClient(entB, model.RoleEnterprise)
	admin := newTestClient("", model.RoleFandoroAdmin)

	hub := NewHub()
	hub.clients[sameTenant] = true
	hub.clients[otherTenant] = true
	hub.clients[admin] = true

	hub.deliver(envelope{enterpriseID: entA, payload: []byte(`{"event":"submission.created"}`)})

	if !received(sameTenant) {
		t.Error("client in the event's enterprise did not receive it")
	}
	if received(otherTenant) {
		t.Error("client in another enterprise received the event")
	}
	if !received(admin) {
		t.Error("platform admin did not receive the event")
	}
}

func TestDeliverUnscopedEventReachesEveryone(t *testing.T) {
	a := newTestClient(uuid.NewString(), model.RoleEnterprise)
	b := newTestClient(uuid.NewString(), model.RoleAuditor)

	hub := NewHub()
	hub.clients[a] = true
	hub.clients[b] = true

	hub.deliver(envelope{payload: []byte(`{"event":"system"}`)})

	if !received(a) || !received(b) {
		t.Error("unscoped event was not delivered to all clients")
	}
}
