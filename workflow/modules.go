package workflow

// Zoning clearance statuses.
const (
	ZoningPending  = "pending"
	ZoningInReview = "in_review"
	ZoningApproved = "approved"
	ZoningRejected = "rejected"
)

// Subdivision plan review statuses.
const (
	SubdivisionSubmitted         = "submitted"
	SubdivisionConceptReview     = "concept_review"
	SubdivisionPreliminaryReview = "preliminary_review"
	SubdivisionImprovementReview = "improvement_review"
	SubdivisionFinalReview       = "final_review"
	SubdivisionApproved          = "approved"
	SubdivisionDenied            = "denied"
	SubdivisionRevision          = "revision"
)

// Subdivision review stages, ordered. The stage is advanced independently of
// the overall status once its review result is approved.
const (
	StageConcept     = "concept"
	StagePreliminary = "preliminary"
	StageImprovement = "improvement"
	StageFinal       = "final"
)

// Per-stage review results.
const (
	StageResultPending  = "pending"
	StageResultApproved = "approved"
	StageResultRejected = "rejected"
)

// Housing beneficiary statuses.
const (
	HousingDraft       = "draft"
	HousingSubmitted   = "submitted"
	HousingUnderReview = "under_review"
	HousingApproved    = "approved"
	HousingRejected    = "rejected"
)

// Module binds a machine to the table and naming conventions of one
// application module. Modules are independent: cross-module references are
// opaque reference-number strings, never foreign keys.
type Module struct {
	Name    string
	Prefix  string
	Table   string
	Machine Machine

	// Stages is the ordered stage list for modules with an orthogonal stage
	// sub-state; empty for the others.
	Stages []string

	// StageReview maps a stage to the overall status representing its review.
	StageReview map[string]string

	// Revision is the "revision requested" status, if the module has one.
	// Replacing a rejected document while the application sits in this status
	// resumes the review of the current stage.
	Revision string
}

// HasStages reports whether the module tracks an orthogonal stage sub-state.
func (m Module) HasStages() bool {
	return len(m.Stages) > 0
}

// NextStage returns the stage following the given one.
func (m Module) NextStage(stage string) (string, bool) {
	for i, s := range m.Stages {
		if s == stage && i+1 < len(m.Stages) {
			return m.Stages[i+1], true
		}
	}
	return "", false
}

// ReviewStatusFor returns the overall status that reviews the given stage.
func (m Module) ReviewStatusFor(stage string) (string, bool) {
	status, ok := m.StageReview[stage]
	return status, ok
}

var Zoning = Module{
	Name:   "zoning",
	Prefix: "ZC",
	Table:  "zoning_applications",
	Machine: Machine{
		Initial:   ZoningPending,
		Submitted: ZoningInReview,
		Transitions: map[string][]string{
			ZoningPending:  {ZoningInReview},
			ZoningInReview: {ZoningApproved, ZoningRejected},
			ZoningApproved: {},
			ZoningRejected: {},
		},
		Review:   []string{ZoningInReview},
		Negative: []string{ZoningRejected},
	},
}

var Subdivision = Module{
	Name:   "subdivision",
	Prefix: "SD",
	Table:  "subdivision_applications",
	Machine: Machine{
		Initial:   SubdivisionSubmitted,
		Submitted: SubdivisionSubmitted,
		Transitions: map[string][]string{
			SubdivisionSubmitted:         {SubdivisionConceptReview},
			SubdivisionConceptReview:     {SubdivisionPreliminaryReview, SubdivisionRevision, SubdivisionDenied},
			SubdivisionPreliminaryReview: {SubdivisionImprovementReview, SubdivisionRevision, SubdivisionDenied},
			SubdivisionImprovementReview: {SubdivisionFinalReview, SubdivisionRevision, SubdivisionDenied},
			SubdivisionFinalReview:       {SubdivisionApproved, SubdivisionRevision, SubdivisionDenied},
			SubdivisionRevision: {
				SubdivisionConceptReview,
				SubdivisionPreliminaryReview,
				SubdivisionImprovementReview,
				SubdivisionFinalReview,
			},
			SubdivisionApproved: {},
			SubdivisionDenied:   {},
		},
		Review: []string{
			SubdivisionConceptReview,
			SubdivisionPreliminaryReview,
			SubdivisionImprovementReview,
			SubdivisionFinalReview,
		},
		Negative: []string{SubdivisionDenied},
	},
	Stages: []string{StageConcept, StagePreliminary, StageImprovement, StageFinal},
	StageReview: map[string]string{
		StageConcept:     SubdivisionConceptReview,
		StagePreliminary: SubdivisionPreliminaryReview,
		StageImprovement: SubdivisionImprovementReview,
		StageFinal:       SubdivisionFinalReview,
	},
	Revision: SubdivisionRevision,
}

var Housing = Module{
	Name:   "housing",
	Prefix: "HB",
	Table:  "housing_applications",
	Machine: Machine{
		Initial:   HousingDraft,
		Submitted: HousingSubmitted,
		Transitions: map[string][]string{
			HousingDraft:       {HousingSubmitted},
			HousingSubmitted:   {HousingUnderReview},
			HousingUnderReview: {HousingApproved, HousingRejected},
			HousingApproved:    {},
			HousingRejected:    {},
		},
		Review:   []string{HousingUnderReview},
		Negative: []string{HousingRejected},
	},
}

// Modules lists every registered application module.
var Modules = []Module{Zoning, Subdivision, Housing}

// ByName looks a module up by its route name.
func ByName(name string) (Module, bool) {
	for _, m := range Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}
