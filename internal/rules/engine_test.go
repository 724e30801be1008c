package rules

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
)

func fixed(ids ...string) func(model.Context, []model.Code) []model.Code {
	return func(model.Context, []model.Code) []model.Code {
		codes := make([]model.Code, len(ids))
		for i, id := range ids {
			codes[i] = model.Code{ID: id}
		}
		return codes
	}
}

func TestNewEngine_GraphErrors(t *testing.T) {
	tests := []struct {
		desc    string
		modules []Module
		want    string
	}{
		{
			desc:    "unknown dependency",
			modules: []Module{{Name: "a", After: []string{"missing"}, Derive: fixed()}},
			want:    "unknown module",
		},
		{
			desc: "cycle",
			modules: []Module{
				{Name: "a", After: []string{"b"}, Derive: fixed()},
				{Name: "b", After: []string{"a"}, Derive: fixed()},
				{Name: "c", Derive: fixed()},
			},
			want: "cycle among: a, b",
		},
		{
			desc:    "duplicate",
			modules: []Module{{Name: "a", Derive: fixed()}, {Name: "a", Derive: fixed()}},
			want:    "duplicate",
		},
		{
			desc:    "missing derive",
			modules: []Module{{Name: "a"}},
			want:    "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := NewEngine(tt.modules, zerolog.Nop())
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEngine_DependenciesRunFirst(t *testing.T) {
	var seen []string
	e, err := NewEngine([]Module{
		{Name: "combo", Rank: 1, After: []string{"stage"}, Derive: func(_ model.Context, prior []model.Code) []model.Code {
			seen = model.IDs(prior)
			return []model.Code{{ID: "COMBO"}}
		}},
		{Name: "stage", Rank: 2, Derive: fixed("STAGE")},
		{Name: "early", Rank: 0, Derive: fixed("EARLY")},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := e.Order(); !reflect.DeepEqual(got, []string{"early", "stage", "combo"}) {
		t.Errorf("Expected execution order [early stage combo], got %v", got)
	}

	codes := e.Run(model.Context{})
	if got := model.IDs(codes); !reflect.DeepEqual(got, []string{"EARLY", "COMBO", "STAGE"}) {
		t.Errorf("Expected output by rank [EARLY COMBO STAGE], got %v", got)
	}
	if !reflect.DeepEqual(seen, []string{"EARLY", "STAGE"}) {
		t.Errorf("Expected combo to see [EARLY STAGE], got %v", seen)
	}
	if codes[1].Rule != "combo" {
		t.Errorf("Expected rule to default to the module name, got %q", codes[1].Rule)
	}
}

func TestEngine_Dedupes(t *testing.T) {
	e, err := NewEngine([]Module{
		{Name: "a", Rank: 1, Derive: fixed("X", "Y")},
		{Name: "b", Rank: 2, Derive: fixed("Y", "Z")},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := model.IDs(e.Run(model.Context{}))
	if !reflect.DeepEqual(got, []string{"X", "Y", "Z"}) {
		t.Errorf("Expected [X Y Z], got %v", got)
	}
}

func TestDefaultEngine(t *testing.T) {
	e := NewDefaultEngine(zerolog.Nop())
	order := e.Order()

	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	if pos[Hypertension] < pos[Renal] || pos[Hypertension] < pos[HeartFailure] {
		t.Errorf("Expected hypertension after renal and heart failure, got %v", order)
	}
	if len(order) != len(DefaultModules()) {
		t.Errorf("Expected %d modules, got %d", len(DefaultModules()), len(order))
	}

	if codes := e.Run(model.Context{}); len(codes) != 0 {
		t.Errorf("Expected no codes for an empty context, got %v", model.IDs(codes))
	}
}
