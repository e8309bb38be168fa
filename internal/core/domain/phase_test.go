package domain

import "testing"

func TestMergeImagesIntoPhases(t *testing.T) {
	id := func(s string) *string { return &s }
	phases := []Phase{
		{ID: "a", Name: "Gros Oeuvre", Photos: []ProjectImage{{ID: "i1", URL: "u1"}}},
		{ID: "b", Name: "Finitions"},
		{ID: "c", Name: ""},
	}
	images := []ProjectImage{
		{ID: "i1", URL: "u1", PhaseID: id("a")},
		{ID: "i2", URL: "u2", PhaseName: id(" gros oeuvre ")},
		{ID: "i3", URL: "u3", PhaseID: id("b")},
		{ID: "i4", URL: "u4", PhaseName: id("")},
		{ID: "i5", URL: "u5"},
	}

	out := MergeImagesIntoPhases(phases, images)
	if len(out) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(out))
	}
	if len(out[0].Photos) != 2 {
		t.Fatalf("expected duplicate dropped and name match kept, got %+v", out[0].Photos)
	}
	if len(out[1].Photos) != 1 || out[1].Photos[0].ID != "i3" {
		t.Fatalf("unexpected photos on b: %+v", out[1].Photos)
	}
	if len(out[2].Photos) != 0 {
		t.Fatalf("unnamed phase must not match empty names: %+v", out[2].Photos)
	}
	if len(phases[0].Photos) != 1 {
		t.Fatalf("input phases must not be modified")
	}
}
