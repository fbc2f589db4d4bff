package server

import (
	"context"
	"testing"
	"time"
)

func TestServer_GracefulStop(t *testing.T) {
	s := newTestServer(t, nil)
	s.config.Server.Port = 0 // ephemeral port

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned %v after graceful stop, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
