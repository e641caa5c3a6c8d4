package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/labauth/component"
	"github.com/kbukum/labauth/config"
	"github.com/kbukum/labauth/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) component.Health {
	return component.Health{Name: m.name, Status: component.StatusHealthy}
}

func (m *mockComponent) Describe() component.Description {
	return component.Description{Name: strings.ToUpper(m.name), Details: "mock"}
}

func newTestApp(t *testing.T) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "labauth-test", Version: "1.0.0"}}
	var out bytes.Buffer
	app, err := NewApp(cfg, WithLogger(logger.NewNop()), WithSummaryOutput(&out), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app, &out
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "labauth-test" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity: %s %s", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied: %q", app.Cfg.Environment)
	}
	if app.Components == nil || app.Logger == nil {
		t.Fatal("expected registry and logger")
	}
}

func TestNewAppValidation(t *testing.T) {
	if _, err := NewApp(&testConfig{}, WithLogger(logger.NewNop())); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestLifecycleOrder(t *testing.T) {
	app, out := newTestApp(t)
	var events []string

	app.RegisterComponent(&mockComponent{name: "db", events: &events})
	app.OnStart(func(context.Context) error { events = append(events, "onStart"); return nil })
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		events = append(events, "configure")
		return a.RegisterComponent(&mockComponent{name: "http", events: &events})
	})
	app.OnReady(func(context.Context) error { events = append(events, "onReady"); return nil })
	app.OnStop(func(context.Context) error { events = append(events, "onStop"); return nil })

	if err := app.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	want := []string{"start:db", "onStart", "configure", "start:http", "onReady", "stop:http", "stop:db", "onStop"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant     %v", events, want)
	}

	summary := out.String()
	for _, s := range []string{"labauth-test 1.0.0", "DB: mock", "HTTP: mock", "All components healthy (2/2)"} {
		if !strings.Contains(summary, s) {
			t.Errorf("summary missing %q:\n%s", s, summary)
		}
	}
}

func TestRunStopsStartedComponentsOnFailure(t *testing.T) {
	app, _ := newTestApp(t)
	var events []string
	app.RegisterComponent(&mockComponent{name: "db", events: &events})
	app.OnConfigure(func(context.Context, *App[*testConfig]) error {
		return errors.New("wiring failed")
	})

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "wiring failed") {
		t.Fatalf("expected configure error, got %v", err)
	}
	if strings.Join(events, ",") != "start:db,stop:db" {
		t.Errorf("events = %v", events)
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	app, _ := newTestApp(t)
	var events []string
	app.RegisterComponent(&mockComponent{name: "db", events: &events})

	ctx, cancel := context.WithCancel(context.Background())
	app.OnReady(func(context.Context) error { cancel(); return nil })

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Join(events, ",") != "start:db,stop:db" {
		t.Errorf("events = %v", events)
	}
}

func TestShutdownReportsErrors(t *testing.T) {
	app, _ := newTestApp(t)
	var events []string
	app.RegisterComponent(&mockComponent{name: "db", stopErr: errors.New("close failed"), events: &events})
	app.OnStop(func(context.Context) error { return errors.New("flush failed") })

	if err := app.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	err := app.Shutdown()
	if err == nil || !strings.Contains(err.Error(), "close failed") {
		t.Fatalf("expected component stop error first, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("empty registry should be ready: %v", err)
	}
}
