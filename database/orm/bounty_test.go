package orm

import "testing"

func TestStageRoundTrip(t *testing.T) {
	for _, stage := range []Stage{
		StageDraft,
		StageActive,
		StageDead,
		StageCompleted,
		StageExpired,
	} {
		if got := StrToStage(stage.String()); got != stage {
			t.Errorf("round trip of %v = %v", stage, got)
		}
	}

	if got := Stage(0).String(); got != "unknown" {
		t.Errorf("zero stage string = %q, want unknown", got)
	}
	if got := StrToStage("bogus"); got != 0 {
		t.Errorf("unknown stage name = %v, want 0", got)
	}
}
