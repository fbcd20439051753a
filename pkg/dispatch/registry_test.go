package dispatch

import (
	"context"
	"testing"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/response"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected registry, got nil")
	}
	if len(r.List()) != 0 {
		t.Fatalf("expected empty registry, got %d entries", len(r.List()))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	info := ResponderInfo{
		Type:        "test-responder",
		Name:        "Test Responder",
		Description: "A test responder",
		RequiresKey: true,
	}
	r.Register(info, func(cfg config.Config) (Responder, error) {
		return ResponderFunc(func(ctx context.Context, query string) (response.Structured, error) {
			return response.New(response.Text{Text: query}), nil
		}), nil
	})

	if !r.IsRegistered("test-responder") {
		t.Fatal("expected responder to be registered")
	}
	got, ok := r.Info("test-responder")
	if !ok {
		t.Fatal("expected to find responder info")
	}
	if got.Name != "Test Responder" {
		t.Fatalf("expected name 'Test Responder', got %q", got.Name)
	}

	responder, gotInfo, err := r.New("test-responder", config.Default())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if gotInfo.Type != "test-responder" {
		t.Fatalf("New() info type = %q", gotInfo.Type)
	}
	res, err := responder.Respond(context.Background(), "ping")
	if err != nil || res.Content.(response.Text).Text != "ping" {
		t.Fatalf("Respond() = %+v, %v", res, err)
	}
}

func TestRegistry_New_UnknownType(t *testing.T) {
	r := NewRegistry()
	if _, _, err := r.New("unknown", config.Default()); err == nil {
		t.Fatal("expected error for unknown responder type")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()
	for _, typ := range []ResponderType{"zeta", "alpha", "mid"} {
		r.Register(ResponderInfo{Type: typ}, nil)
	}
	list := r.List()
	if len(list) != 3 || list[0].Type != "alpha" || list[2].Type != "zeta" {
		t.Fatalf("List() = %+v, want sorted by type", list)
	}
}

func TestDefaultRegistryHasMock(t *testing.T) {
	if !DefaultRegistry.IsRegistered(ResponderMock) {
		t.Fatal("mock responder should self-register")
	}
}
