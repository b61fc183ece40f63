package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// fakeProvider scripts availability and generation behavior per provider.
type fakeProvider struct {
	name      string
	pingErr   error
	questionF func() (*core.NextQuestion, error)
	reportF   func() (string, error)
	calls     int
}

func (f *fakeProvider) Name() string                   { return f.name }
func (f *fakeProvider) Ping(context.Context) error     { return f.pingErr }
func (f *fakeProvider) GenerateNextQuestion(context.Context, string, string) (*core.NextQuestion, error) {
	f.calls++
	if f.questionF == nil {
		return &core.NextQuestion{Done: true}, nil
	}
	return f.questionF()
}
func (f *fakeProvider) GenerateReport(context.Context, string, string) (string, error) {
	f.calls++
	if f.reportF == nil {
		return "## Overall Tier: Enabler\n\nok", nil
	}
	return f.reportF()
}

func unavailable(name string) *fakeProvider {
	return &fakeProvider{
		name:    name,
		pingErr: core.ErrProviderUnavailable(name, "probe failed"),
		questionF: func() (*core.NextQuestion, error) {
			return nil, core.ErrProviderUnavailable(name, "down")
		},
		reportF: func() (string, error) {
			return "", core.ErrProviderUnavailable(name, "down")
		},
	}
}

func TestInitialize_SelectsFirstHealthy(t *testing.T) {
	third := &fakeProvider{name: "third"}
	m, err := NewManager([]core.Provider{unavailable("first"), unavailable("second"), third})
	if err != nil {
		t.Fatalf("NewManager error = %v", err)
	}

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}
	if m.Current() != "third" {
		t.Errorf("Current() = %q, want third", m.Current())
	}
}

func TestInitialize_AllProbesFail(t *testing.T) {
	m, _ := NewManager([]core.Provider{unavailable("a"), unavailable("b")})

	err := m.Initialize(context.Background())
	if err == nil {
		t.Fatal("Initialize = nil, want exhausted error")
	}
	if core.CategoryOf(err) != core.ErrCatExhausted {
		t.Errorf("category = %q, want exhausted", core.CategoryOf(err))
	}
}

func TestGenerate_FallsBackInOrder(t *testing.T) {
	primary := &fakeProvider{
		name: "primary",
		questionF: func() (*core.NextQuestion, error) {
			return nil, core.ErrBadResponse("PARSE_JSON", "garbage")
		},
	}
	secondary := &fakeProvider{
		name: "secondary",
		questionF: func() (*core.NextQuestion, error) {
			return &core.NextQuestion{Question: "Q", AnswerType: core.AnswerText}, nil
		},
	}
	m, _ := NewManager([]core.Provider{primary, secondary})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}

	next, err := m.GenerateNextQuestion(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("GenerateNextQuestion error = %v", err)
	}
	if next.Question != "Q" {
		t.Errorf("question = %q", next.Question)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want exactly 1 (no same-provider retry)", primary.calls)
	}
	// The successful fallback becomes current.
	if m.Current() != "secondary" {
		t.Errorf("Current() = %q, want secondary", m.Current())
	}
}

func TestGenerate_AllFail(t *testing.T) {
	m, _ := NewManager([]core.Provider{
		&fakeProvider{name: "a", pingErr: nil, reportF: func() (string, error) {
			return "", core.ErrProviderUnavailable("a", "down")
		}},
		unavailable("b"),
	})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}

	_, err := m.GenerateReport(context.Background(), "s", "u")
	if core.CategoryOf(err) != core.ErrCatExhausted {
		t.Fatalf("category = %q, want exhausted (err=%v)", core.CategoryOf(err), err)
	}
	var de *core.DomainError
	if !errors.As(err, &de) {
		t.Fatal("want DomainError")
	}
	if de.Details["failures"] == nil {
		t.Error("aggregate error is missing per-provider failures")
	}
}

func TestGenerate_BeforeInitialize(t *testing.T) {
	m, _ := NewManager([]core.Provider{&fakeProvider{name: "a"}})
	if _, err := m.GenerateReport(context.Background(), "s", "u"); err == nil {
		t.Error("uninitialized manager accepted a call")
	}
}

func TestSetProvider(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	m, _ := NewManager([]core.Provider{a, b})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}

	if err := m.SetProvider("b"); err != nil {
		t.Fatalf("SetProvider error = %v", err)
	}
	if m.Current() != "b" {
		t.Errorf("Current() = %q, want b", m.Current())
	}
	if err := m.SetProvider("missing"); !core.IsNotFound(err) {
		t.Errorf("SetProvider(missing) = %v, want not_found", err)
	}
}

func TestPingAll(t *testing.T) {
	m, _ := NewManager([]core.Provider{&fakeProvider{name: "up"}, unavailable("down")})
	results := m.PingAll(context.Background())

	if results["up"] != nil {
		t.Errorf("results[up] = %v, want nil", results["up"])
	}
	if results["down"] == nil {
		t.Error("results[down] = nil, want error")
	}
}

func TestNewManager_Empty(t *testing.T) {
	if _, err := NewManager(nil); err == nil {
		t.Error("NewManager(nil) = nil error")
	}
}
