package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/modules/contacts"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/authz"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage/memory"
)

type stubGateway struct{}

func (stubGateway) CreateContact(context.Context, contacts.CreateContactRequest) (contacts.CreateContactResult, error) {
	return contacts.CreateContactResult{}, nil
}

func (stubGateway) UpdateRelationship(context.Context, contacts.UpdateRelationshipRequest) error {
	return nil
}

func (stubGateway) ReplaceEmployments(context.Context, contacts.ReplaceEmploymentsRequest) error {
	return nil
}

func (stubGateway) AddAddress(context.Context, contacts.AddAddressRequest) error {
	return nil
}

func (stubGateway) DeleteAddress(context.Context, contacts.DeleteAddressRequest) error {
	return nil
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	_, err := NewServer(Config{HTTPAddr: "  "})
	if err == nil {
		t.Fatal("NewServer() expected error for blank address")
	}
}

func TestNewServerClosesBackend(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{HTTPAddr: "localhost:0"}, WithSessionBackend(memory.NewStore()), WithGateway(stubGateway{}))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	server.Close()
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{HTTPAddr: "localhost:0"}, memory.NewStore(), WithGateway(stubGateway{}))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /up status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "ok" {
		t.Fatalf("GET /up body = %q, want %q", body, "ok")
	}
}

func TestHealthEndpointReportsUnconfiguredGateway(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{HTTPAddr: "localhost:0"}, memory.NewStore())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /up status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandlerMountsContactsRoutes(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{HTTPAddr: "localhost:0"}, memory.NewStore(), WithGateway(stubGateway{}))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/prisoner/A1234BC/contacts/create/start?mode=NEW", nil)
	req.Header.Set("X-Auth-Username", "tester")
	req.Header.Set("X-Auth-Roles", authz.PermissionManageContacts)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("start status = %d, want %d", rec.Code, http.StatusFound)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/prisoner/A1234BC/contacts/create/") {
		t.Fatalf("start redirect = %q, want journey step under /prisoner/A1234BC/contacts/create/", location)
	}
}

func TestHandlerRejectsMissingPermission(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{HTTPAddr: "localhost:0"}, memory.NewStore(), WithGateway(stubGateway{}))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/prisoner/A1234BC/contacts/create/start?mode=NEW", nil)
	req.Header.Set("X-Auth-Username", "tester")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("start status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
