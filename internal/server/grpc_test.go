package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	authservice "blog-platform/backend/internal/auth/service"
	"blog-platform/backend/internal/security"
)

// mockServiceRegistrar implements grpc.ServiceRegistrar for testing.
type mockServiceRegistrar struct {
	services []string
}

func (m *mockServiceRegistrar) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	m.services = append(m.services, desc.ServiceName)
}

func TestRegisterServices(t *testing.T) {
	mockReg := &mockServiceRegistrar{}
	RegisterServices(mockReg, health.NewServer())

	if len(mockReg.services) != 1 || mockReg.services[0] != "grpc.health.v1.Health" {
		t.Errorf("registered services = %v, want [grpc.health.v1.Health]", mockReg.services)
	}
}

func TestNew(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	s, hs, err := New(Deps{Tokens: tokens, Auth: &authservice.AuthService{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s == nil || hs == nil {
		t.Fatal("New returned nil server or health reporter")
	}
	s.Stop()
}

func TestNew_MissingDependencies(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}

	if _, _, err := New(Deps{Auth: &authservice.AuthService{}}); err == nil {
		t.Error("expected error for missing token provider")
	}
	if _, _, err := New(Deps{Tokens: tokens}); err == nil {
		t.Error("expected error for missing auth service")
	}
}

func TestDefaultPublicMethods(t *testing.T) {
	pm := DefaultPublicMethods()
	for _, m := range []string{"/grpc.health.v1.Health/Check", "/grpc.health.v1.Health/Watch"} {
		if !pm[m] {
			t.Errorf("%s should be public", m)
		}
	}
}

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestWatchReadiness(t *testing.T) {
	hs := health.NewServer()
	var healthy atomic.Bool
	healthy.Store(true)
	db := pingFunc(func(context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errors.New("connection refused")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchReadiness(ctx, hs, db, 5*time.Millisecond)
		close(done)
	}()

	waitForStatus := func(want healthpb.HealthCheckResponse_ServingStatus) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
			if err == nil && resp.Status == want {
				return
			}
			time.Sleep(time.Millisecond)
		}
		t.Fatalf("health status never reached %v", want)
	}

	waitForStatus(healthpb.HealthCheckResponse_SERVING)
	healthy.Store(false)
	waitForStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WatchReadiness did not stop on context cancel")
	}
}
