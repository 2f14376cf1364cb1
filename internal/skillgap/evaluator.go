package skillgap

import (
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/core/common/validation"
	"github.com/skillbridge/skillbridge/internal/skill"
)

// Evaluate derives the training need, if any, implied by one assessment
// against its benchmark snapshot. A non-positive gap means the employee
// meets the bar and no need is produced.
//
// Scores outside the proficiency scale fail validation outright rather than
// being clamped; a record like that indicates corrupted input.
func Evaluate(a *assessment.Assessment, criticality *skill.Criticality) (*TrainingNeed, error) {
	validator := validation.NewValidator()
	validator.Field("score", a.Score).ScoreRange(internal.ErrCodeInvalidScore)
	validator.Field("benchmark", a.BenchmarkAtTime).ScoreRange(internal.ErrCodeInvalidBenchmark)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	gap := a.BenchmarkAtTime - a.Score
	if gap <= 0 {
		return nil, nil
	}

	return &TrainingNeed{
		EmployeeID:         a.EmployeeID,
		SkillID:            a.SkillID,
		Gap:                gap,
		BenchmarkScore:     a.BenchmarkAtTime,
		EmployeeScore:      a.Score,
		CriticalityWeight:  criticality.Weight,
		Status:             StatusTrainingRequired,
		SourceAssessmentID: a.ID,
		AssessedAt:         a.AssessmentTimestamp,
	}, nil
}
