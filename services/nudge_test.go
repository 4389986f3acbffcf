package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectNudgePriorityOrder(t *testing.T) {
	tests := []struct {
		name        string
		nudgeCtx    NudgeContext
		wantType    string
		wantTrigger string
	}{
		{
			name:        "velocity drop wins over everything",
			nudgeCtx:    NudgeContext{VelocityDrop: true, HighBurnout: true, ExamSoon: true, Loneliness: true, Overwhelmed: true},
			wantType:    "breathing",
			wantTrigger: "velocity_drop",
		},
		{
			name:        "high burnout beats exam stress",
			nudgeCtx:    NudgeContext{HighBurnout: true, ExamSoon: true},
			wantType:    "sleep",
			wantTrigger: "high_burnout",
		},
		{
			name:        "exam approaching",
			nudgeCtx:    NudgeContext{ExamSoon: true},
			wantType:    "pomodoro",
			wantTrigger: "exam_approaching",
		},
		{
			name:        "loneliness",
			nudgeCtx:    NudgeContext{Loneliness: true},
			wantType:    "social",
			wantTrigger: "loneliness_detected",
		},
		{
			name:        "overwhelm",
			nudgeCtx:    NudgeContext{Overwhelmed: true},
			wantType:    "grounding",
			wantTrigger: "overwhelm_detected",
		},
		{
			name:        "no flags falls back to general check",
			nudgeCtx:    NudgeContext{},
			wantType:    "breathing",
			wantTrigger: "general_check",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotTrigger := SelectNudge(tt.nudgeCtx)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantTrigger, gotTrigger)
		})
	}
}

func TestNudgeTemplateResolution(t *testing.T) {
	for _, nudgeType := range []string{"breathing", "grounding", "pomodoro", "social", "sleep"} {
		tpl := NudgeTemplate(nudgeType)
		assert.NotEmpty(t, tpl.Title)
		assert.NotEmpty(t, tpl.Message)
		assert.Greater(t, tpl.Duration, 0)
	}
}

func TestNudgeTemplateUnknownTypeFallsBack(t *testing.T) {
	assert.Equal(t, NudgeTemplate("breathing"), NudgeTemplate("mystery"))
}
