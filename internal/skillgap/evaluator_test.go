package skillgap_test

import (
	"time"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/skill"
	"github.com/skillbridge/skillbridge/internal/skillgap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluate", func() {
	var (
		record      *assessment.Assessment
		criticality *skill.Criticality
		assessedAt  time.Time
	)

	BeforeEach(func() {
		assessedAt = time.Date(2025, 7, 5, 14, 30, 0, 0, time.UTC)
		record = &assessment.Assessment{
			ID:                  "assess_001",
			EmployeeID:          "usr_004",
			SkillID:             "skill_003",
			Score:               6,
			BenchmarkAtTime:     8,
			AssessmentTimestamp: assessedAt,
		}
		criticality = &skill.Criticality{
			ID:     "crit_002",
			Name:   "High",
			Weight: 2.0,
		}
	})

	Context("when the score is below the benchmark", func() {
		It("should produce a training need with the gap", func() {
			need, err := skillgap.Evaluate(record, criticality)
			Expect(err).NotTo(HaveOccurred())
			Expect(need).NotTo(BeNil())
			Expect(need.Gap).To(Equal(2))
			Expect(need.BenchmarkScore).To(Equal(8))
			Expect(need.EmployeeScore).To(Equal(6))
			Expect(need.CriticalityWeight).To(Equal(2.0))
			Expect(need.Status).To(Equal(skillgap.StatusTrainingRequired))
			Expect(need.SourceAssessmentID).To(Equal("assess_001"))
			Expect(need.AssessedAt).To(Equal(assessedAt))
		})

		It("should weight priority by criticality", func() {
			need, err := skillgap.Evaluate(record, criticality)
			Expect(err).NotTo(HaveOccurred())
			Expect(need.Priority()).To(Equal(4.0))
		})
	})

	Context("when the score meets the benchmark", func() {
		It("should produce no need at an exact match", func() {
			record.Score = 8
			need, err := skillgap.Evaluate(record, criticality)
			Expect(err).NotTo(HaveOccurred())
			Expect(need).To(BeNil())
		})

		It("should produce no need when the score exceeds the benchmark", func() {
			record.Score = 9
			need, err := skillgap.Evaluate(record, criticality)
			Expect(err).NotTo(HaveOccurred())
			Expect(need).To(BeNil())
		})
	})

	Context("when a score is outside the proficiency scale", func() {
		It("should reject a score above 10 instead of clamping", func() {
			record.Score = 11
			need, err := skillgap.Evaluate(record, criticality)
			Expect(need).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a negative benchmark", func() {
			record.BenchmarkAtTime = -1
			need, err := skillgap.Evaluate(record, criticality)
			Expect(need).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})
})

var _ = Describe("Prioritize", func() {
	It("should order by descending gap-weighted priority", func() {
		needs := []*skillgap.TrainingNeed{
			{ID: "n1", Gap: 1, CriticalityWeight: 2.0},
			{ID: "n2", Gap: 4, CriticalityWeight: 3.0},
			{ID: "n3", Gap: 2, CriticalityWeight: 3.0},
		}

		sorted := skillgap.Prioritize(needs)
		Expect(sorted[0].ID).To(Equal("n2"))
		Expect(sorted[1].ID).To(Equal("n3"))
		Expect(sorted[2].ID).To(Equal("n1"))
	})

	It("should break ties by earliest assessment", func() {
		earlier := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		later := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
		needs := []*skillgap.TrainingNeed{
			{ID: "recent", Gap: 2, CriticalityWeight: 2.0, AssessedAt: later},
			{ID: "older", Gap: 2, CriticalityWeight: 2.0, AssessedAt: earlier},
		}

		sorted := skillgap.Prioritize(needs)
		Expect(sorted[0].ID).To(Equal("older"))
		Expect(sorted[1].ID).To(Equal("recent"))
	})

	It("should not mutate the input slice", func() {
		needs := []*skillgap.TrainingNeed{
			{ID: "n1", Gap: 1, CriticalityWeight: 1.0},
			{ID: "n2", Gap: 5, CriticalityWeight: 3.0},
		}

		skillgap.Prioritize(needs)
		Expect(needs[0].ID).To(Equal("n1"))
	})
})
