package models

import "testing"

func TestGroupRef_Valid(t *testing.T) {
	tests := []struct {
		name string
		ref  GroupRef
		want bool
	}{
		{"by id", GroupByID(7), true},
		{"by handle", GroupByHandle("mathclub"), true},
		{"neither", GroupRef{}, false},
		{"both", GroupRef{ID: 7, Handle: "mathclub"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreThreshold_Contains(t *testing.T) {
	threshold := ScoreThreshold{MinScore: 100, MaxScore: 199}

	for score, want := range map[int]bool{
		99:  false,
		100: true,
		150: true,
		199: true,
		200: false,
	} {
		if got := threshold.Contains(score); got != want {
			t.Errorf("Contains(%d) = %v, want %v", score, got, want)
		}
	}
}

func TestRole_Flags(t *testing.T) {
	guest := Role{Tag: RoleTagGuest}
	if !guest.IsGuest() {
		t.Error("Expected guest tag to be detected")
	}

	manual := Role{Tag: "legend", Priority: ManualOnlyPriority}
	if !manual.ManualOnly() {
		t.Error("Expected priority -1 to mark manual-only")
	}
	if manual.IsGuest() {
		t.Error("Manual-only role is not the guest sentinel")
	}
}
