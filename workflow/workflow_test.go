package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoningTransitions(t *testing.T) {
	m := Zoning.Machine

	assert.True(t, m.CanTransition(ZoningPending, ZoningInReview))
	assert.True(t, m.CanTransition(ZoningInReview, ZoningApproved))
	assert.True(t, m.CanTransition(ZoningInReview, ZoningRejected))

	// No skipping review and no leaving a decision.
	assert.False(t, m.CanTransition(ZoningPending, ZoningApproved))
	assert.False(t, m.CanTransition(ZoningPending, ZoningRejected))
	assert.False(t, m.CanTransition(ZoningApproved, ZoningRejected))
	assert.False(t, m.CanTransition(ZoningRejected, ZoningInReview))
}

func TestHousingTransitions(t *testing.T) {
	m := Housing.Machine

	assert.True(t, m.CanTransition(HousingDraft, HousingSubmitted))
	assert.True(t, m.CanTransition(HousingSubmitted, HousingUnderReview))
	assert.True(t, m.CanTransition(HousingUnderReview, HousingApproved))
	assert.True(t, m.CanTransition(HousingUnderReview, HousingRejected))

	assert.False(t, m.CanTransition(HousingDraft, HousingUnderReview))
	assert.False(t, m.CanTransition(HousingSubmitted, HousingApproved))
	assert.False(t, m.CanTransition(HousingApproved, HousingApproved))
}

func TestSubdivisionTransitions(t *testing.T) {
	m := Subdivision.Machine

	assert.True(t, m.CanTransition(SubdivisionSubmitted, SubdivisionConceptReview))
	assert.True(t, m.CanTransition(SubdivisionConceptReview, SubdivisionPreliminaryReview))
	assert.True(t, m.CanTransition(SubdivisionPreliminaryReview, SubdivisionImprovementReview))
	assert.True(t, m.CanTransition(SubdivisionImprovementReview, SubdivisionFinalReview))
	assert.True(t, m.CanTransition(SubdivisionFinalReview, SubdivisionApproved))

	// Approval only exists from the final review; denial and revision from any
	// review status.
	assert.False(t, m.CanTransition(SubdivisionConceptReview, SubdivisionApproved))
	assert.False(t, m.CanTransition(SubdivisionSubmitted, SubdivisionApproved))
	for _, review := range m.Review {
		assert.True(t, m.CanTransition(review, SubdivisionRevision), "revision from %s", review)
		assert.True(t, m.CanTransition(review, SubdivisionDenied), "denial from %s", review)
	}

	// Revision resumes at any review status but never decides.
	for _, review := range m.Review {
		assert.True(t, m.CanTransition(SubdivisionRevision, review), "resume at %s", review)
	}
	assert.False(t, m.CanTransition(SubdivisionRevision, SubdivisionApproved))
	assert.False(t, m.CanTransition(SubdivisionRevision, SubdivisionDenied))
}

func TestTerminalStatuses(t *testing.T) {
	cases := []struct {
		module   Module
		terminal []string
		open     []string
	}{
		{Zoning, []string{ZoningApproved, ZoningRejected}, []string{ZoningPending, ZoningInReview}},
		{Subdivision, []string{SubdivisionApproved, SubdivisionDenied}, []string{SubdivisionSubmitted, SubdivisionRevision, SubdivisionFinalReview}},
		{Housing, []string{HousingApproved, HousingRejected}, []string{HousingDraft, HousingSubmitted, HousingUnderReview}},
	}

	for _, tc := range cases {
		m := tc.module.Machine
		for _, status := range tc.terminal {
			assert.True(t, m.IsTerminal(status), "%s/%s should be terminal", tc.module.Name, status)
			assert.Empty(t, m.Transitions[status], "%s/%s should have no exits", tc.module.Name, status)
		}
		for _, status := range tc.open {
			assert.False(t, m.IsTerminal(status), "%s/%s should not be terminal", tc.module.Name, status)
		}
		// An unknown status is not terminal, it is invalid.
		assert.False(t, m.IsTerminal("archived"))
	}
}

func TestNegativeStatuses(t *testing.T) {
	assert.True(t, Zoning.Machine.IsNegative(ZoningRejected))
	assert.False(t, Zoning.Machine.IsNegative(ZoningApproved))
	assert.True(t, Subdivision.Machine.IsNegative(SubdivisionDenied))
	assert.False(t, Subdivision.Machine.IsNegative(SubdivisionRevision))
	assert.True(t, Housing.Machine.IsNegative(HousingRejected))
}

func TestKnownAndStatuses(t *testing.T) {
	for _, module := range Modules {
		m := module.Machine
		for _, status := range m.Statuses() {
			assert.True(t, m.Known(status), "%s/%s", module.Name, status)
		}
		assert.False(t, m.Known("archived"), module.Name)
		assert.False(t, m.Known(""), module.Name)
	}

	// Vocabulary sizes double-check the tables are complete.
	assert.Len(t, Zoning.Machine.Statuses(), 4)
	assert.Len(t, Subdivision.Machine.Statuses(), 8)
	assert.Len(t, Housing.Machine.Statuses(), 5)
}

func TestSubdivisionStages(t *testing.T) {
	require.True(t, Subdivision.HasStages())
	assert.Equal(t, []string{StageConcept, StagePreliminary, StageImprovement, StageFinal}, Subdivision.Stages)

	next, ok := Subdivision.NextStage(StageConcept)
	require.True(t, ok)
	assert.Equal(t, StagePreliminary, next)

	next, ok = Subdivision.NextStage(StageImprovement)
	require.True(t, ok)
	assert.Equal(t, StageFinal, next)

	_, ok = Subdivision.NextStage(StageFinal)
	assert.False(t, ok, "final stage has no successor")

	_, ok = Subdivision.NextStage("survey")
	assert.False(t, ok)

	for stage, want := range map[string]string{
		StageConcept:     SubdivisionConceptReview,
		StagePreliminary: SubdivisionPreliminaryReview,
		StageImprovement: SubdivisionImprovementReview,
		StageFinal:       SubdivisionFinalReview,
	} {
		got, ok := Subdivision.ReviewStatusFor(stage)
		require.True(t, ok, stage)
		assert.Equal(t, want, got)
	}

	assert.False(t, Zoning.HasStages())
	assert.False(t, Housing.HasStages())
}

func TestByName(t *testing.T) {
	for _, name := range []string{"zoning", "subdivision", "housing"} {
		module, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, module.Name)
	}

	_, ok := ByName("permits")
	assert.False(t, ok)
}

func TestModulePrefixes(t *testing.T) {
	assert.Equal(t, "ZC", Zoning.Prefix)
	assert.Equal(t, "SD", Subdivision.Prefix)
	assert.Equal(t, "HB", Housing.Prefix)
}
