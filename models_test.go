package claudesdk

import "testing"

func TestModels_ReturnsNonEmptyCatalog(t *testing.T) {
	if len(Models()) == 0 {
		t.Fatal("expected a non-empty model catalog")
	}
}

func TestModelByID_UnknownReturnsNil(t *testing.T) {
	if got := ModelByID("not-a-real-model"); got != nil {
		t.Fatalf("expected nil for unknown model, got %+v", got)
	}
}

func TestSuggestModel_ReturnsAtMostThree(t *testing.T) {
	suggestions := SuggestModel("claude-sonet")
	if len(suggestions) > 3 {
		t.Fatalf("expected at most 3 suggestions, got %d", len(suggestions))
	}
}

func TestSuggestModel_EmptyInputDoesNotPanic(t *testing.T) {
	_ = SuggestModel("")
}
