package core_test

import (
	"testing"

	"github.com/melih-ucgun/decree/internal/core"
)

func TestNoOpUIDeniesConfirmation(t *testing.T) {
	var term core.UI = &core.NoOpUI{}
	if term.Confirm("Do you want to apply these changes?") {
		t.Error("NoOpUI must answer no, it has no operator to ask")
	}
}

func TestAutoApproveAnswersYes(t *testing.T) {
	term := &core.AutoApprove{UI: &core.NoOpUI{}}
	if !term.Confirm("Do you want to apply these changes?") {
		t.Error("AutoApprove must answer yes regardless of the wrapped UI")
	}
}
