package domain

import (
	"math"
	"reflect"
	"testing"
)

func TestSanitize_ReplacesNonFiniteValues(t *testing.T) {
	input := map[string]any{
		"nan":  math.NaN(),
		"inf":  math.Inf(1),
		"ninf": math.Inf(-1),
		"ok":   12.5,
		"text": "hello",
		"flag": true,
		"none": nil,
	}

	out := Sanitize(input).(map[string]any)
	if out["nan"] != nil || out["inf"] != nil || out["ninf"] != nil {
		t.Fatalf("non-finite values must become nil, got %v", out)
	}
	if out["ok"] != 12.5 || out["text"] != "hello" || out["flag"] != true {
		t.Fatalf("finite and non-numeric values must pass through, got %v", out)
	}
}

func TestSanitize_Recurses(t *testing.T) {
	input := map[string]any{
		"nested": map[string]any{
			"deep": []any{1.0, math.NaN(), map[string]any{"x": math.Inf(1)}},
		},
	}

	out := Sanitize(input).(map[string]any)
	deep := out["nested"].(map[string]any)["deep"].([]any)
	if deep[0] != 1.0 {
		t.Fatalf("expected 1.0, got %v", deep[0])
	}
	if deep[1] != nil {
		t.Fatalf("expected nil for nested NaN, got %v", deep[1])
	}
	if inner := deep[2].(map[string]any); inner["x"] != nil {
		t.Fatalf("expected nil for nested Inf, got %v", inner["x"])
	}
}

func TestSanitize_CopiesContainers(t *testing.T) {
	original := map[string]any{"v": math.NaN()}
	out := Sanitize(original).(map[string]any)

	if !math.IsNaN(original["v"].(float64)) {
		t.Fatal("input document must not be mutated")
	}
	if out["v"] != nil {
		t.Fatalf("output must be sanitized, got %v", out["v"])
	}
}

func TestSanitize_Float32(t *testing.T) {
	if got := Sanitize(float32(math.NaN())); got != nil {
		t.Fatalf("float32 NaN must become nil, got %v", got)
	}
	if got := Sanitize(float32(1.5)); got != float32(1.5) {
		t.Fatalf("finite float32 must pass through, got %v", got)
	}
}

func TestSanitize_ScalarPassthrough(t *testing.T) {
	for _, value := range []any{nil, "s", true, 7, 7.5} {
		if got := Sanitize(value); !reflect.DeepEqual(got, value) {
			t.Fatalf("expected %v to pass through, got %v", value, got)
		}
	}
}
