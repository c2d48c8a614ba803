package analysis

import (
	"strings"
	"testing"
)

// padTo extends text with filler prose to exactly n characters.
func padTo(t *testing.T, text string, n int) string {
	t.Helper()
	if len(text) > n {
		t.Fatalf("base text already %d chars, want %d", len(text), n)
	}
	return text + strings.Repeat("x", n-len(text))
}

func TestDetectLengthDisparity(t *testing.T) {
	t.Parallel()

	codeText := "Use this:\n```python\nprint(1)\n```\n"

	t.Run("ratio of exactly 1.5 does not fire", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "Backend A", Text: padTo(t, codeText, 120)},
			{BackendID: "b", DisplayName: "Backend B", Text: padTo(t, "short answer. ", 80)},
		}
		if _, ok := detectLengthDisparity(inputs); ok {
			t.Error("120/80 = 1.5 is at the boundary and must not fire")
		}
	})

	t.Run("ratio above 1.5 fires and names the longer backend", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "Backend A", Text: padTo(t, codeText, 121)},
			{BackendID: "b", DisplayName: "Backend B", Text: padTo(t, "short answer. ", 80)},
		}
		diff, ok := detectLengthDisparity(inputs)
		if !ok {
			t.Fatal("121/80 > 1.5 must fire")
		}
		if !strings.Contains(diff.Description, "Backend A is more detailed (121 chars)") {
			t.Errorf("description should name Backend A as more detailed, got %q", diff.Description)
		}
		if !strings.Contains(diff.Description, "Backend B (80 chars)") {
			t.Errorf("description should name Backend B with its length, got %q", diff.Description)
		}
	})

	t.Run("empty response counts as maximal disparity", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A", Text: "some nonempty answer"},
			{BackendID: "b", DisplayName: "B", Text: ""},
		}
		if _, ok := detectLengthDisparity(inputs); !ok {
			t.Error("nonempty vs empty should fire")
		}
	})

	t.Run("all empty does not fire", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A", Text: ""},
			{BackendID: "b", DisplayName: "B", Text: ""},
		}
		if _, ok := detectLengthDisparity(inputs); ok {
			t.Error("two empty responses have no length disparity")
		}
	})
}

func TestDetectComplexityDisparity(t *testing.T) {
	t.Parallel()

	t.Run("uniform buckets do not fire", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A"},
			{BackendID: "b", DisplayName: "B"},
		}
		if _, ok := detectComplexityDisparity(inputs, []Complexity{ComplexityLow, ComplexityLow}); ok {
			t.Error("identical buckets must not fire")
		}
	})

	t.Run("mixed buckets fire and list each backend", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A"},
			{BackendID: "b", DisplayName: "B"},
		}
		diff, ok := detectComplexityDisparity(inputs, []Complexity{ComplexityLow, ComplexityHigh})
		if !ok {
			t.Fatal("distinct buckets must fire")
		}
		if !strings.Contains(diff.Description, "A: Low") || !strings.Contains(diff.Description, "B: High") {
			t.Errorf("description should list each backend's bucket, got %q", diff.Description)
		}
	})
}

func TestDetectApproachDisparity(t *testing.T) {
	t.Parallel()

	t.Run("same approach does not fire", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A", Text: "Define a class with inheritance."},
			{BackendID: "b", DisplayName: "B", Text: "Model it as an object-oriented hierarchy with a class."},
		}
		if _, ok := detectApproachDisparity(inputs); ok {
			t.Error("a single shared tag must not fire")
		}
	})

	t.Run("mixed approaches fire with sorted tags", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A", Text: "Use a class hierarchy."},
			{BackendID: "b", DisplayName: "B", Text: "Prefer a pure function and immutable data."},
		}
		diff, ok := detectApproachDisparity(inputs)
		if !ok {
			t.Fatal("distinct tags must fire")
		}
		if !strings.Contains(diff.Description, "functional") ||
			!strings.Contains(diff.Description, "object-oriented") {
			t.Errorf("description should list detected tags, got %q", diff.Description)
		}
	})

	t.Run("no tags anywhere does not fire", func(t *testing.T) {
		t.Parallel()
		inputs := []Input{
			{BackendID: "a", DisplayName: "A", Text: "Plain prose."},
			{BackendID: "b", DisplayName: "B", Text: "More plain prose."},
		}
		if _, ok := detectApproachDisparity(inputs); ok {
			t.Error("no tags must not fire")
		}
	})
}
