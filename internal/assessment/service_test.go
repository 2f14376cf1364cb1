package assessment_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/skill"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAssessmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assessment Service Suite")
}

// MockRepository implements assessment.Repository for testing
type MockRepository struct {
	assessments map[string]*assessment.Assessment
	cycles      map[string]*assessment.Cycle
	shouldFail  bool
	failError   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		assessments: make(map[string]*assessment.Assessment),
		cycles:      make(map[string]*assessment.Cycle),
	}
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*assessment.Assessment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	a, exists := m.assessments[id]
	if !exists {
		return nil, internal.ErrAssessmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *MockRepository) GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) ([]*assessment.Assessment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*assessment.Assessment
	for _, a := range m.assessments {
		if a.EmployeeID == employeeID && (cycleID == "" || a.CycleID == cycleID) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByEmployeeAndSkill(ctx context.Context, employeeID, skillID, cycleID string) (*assessment.Assessment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, a := range m.assessments {
		if a.EmployeeID == employeeID && a.SkillID == skillID && a.CycleID == cycleID {
			return a, nil
		}
	}
	return nil, internal.ErrAssessmentNotFound
}

func (m *MockRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *a
	m.assessments[a.ID] = &copied
	return nil
}

func (m *MockRepository) Update(ctx context.Context, a *assessment.Assessment) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *a
	m.assessments[a.ID] = &copied
	return nil
}

func (m *MockRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	if m.shouldFail {
		return m.failError
	}
	a, exists := m.assessments[id]
	if !exists {
		return internal.ErrAssessmentNotFound
	}
	a.IsLocked = locked
	return nil
}

func (m *MockRepository) GetCycleByID(ctx context.Context, id string) (*assessment.Cycle, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	c, exists := m.cycles[id]
	if !exists {
		return nil, internal.ErrCycleNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockRepository) GetActiveCycle(ctx context.Context) (*assessment.Cycle, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, c := range m.cycles {
		if c.IsActiveCycle {
			return c, nil
		}
	}
	return nil, internal.ErrCycleNotFound
}

func (m *MockRepository) ListCycles(ctx context.Context) ([]*assessment.Cycle, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	result := make([]*assessment.Cycle, 0, len(m.cycles))
	for _, c := range m.cycles {
		result = append(result, c)
	}
	return result, nil
}

func (m *MockRepository) CreateCycle(ctx context.Context, c *assessment.Cycle) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *c
	m.cycles[c.ID] = &copied
	return nil
}

func (m *MockRepository) ActivateCycle(ctx context.Context, id string) error {
	if m.shouldFail {
		return m.failError
	}
	for _, c := range m.cycles {
		c.IsActiveCycle = c.ID == id
	}
	return nil
}

// MockBenchmarkProvider implements assessment.BenchmarkProvider
type MockBenchmarkProvider struct {
	benchmarks map[string]*skill.Benchmark
}

func NewMockBenchmarkProvider() *MockBenchmarkProvider {
	return &MockBenchmarkProvider{benchmarks: make(map[string]*skill.Benchmark)}
}

func (m *MockBenchmarkProvider) CurrentBenchmark(ctx context.Context, skillID string) (*skill.Benchmark, error) {
	b, exists := m.benchmarks[skillID]
	if !exists {
		return nil, internal.ErrBenchmarkNotFound
	}
	return b, nil
}

func (m *MockBenchmarkProvider) Set(skillID string, score int) {
	m.benchmarks[skillID] = &skill.Benchmark{SkillID: skillID, Score: score, EffectiveStartDate: time.Now()}
}

// MockRecomputer implements assessment.Recomputer
type MockRecomputer struct {
	recomputed []string
	failError  error
}

func (m *MockRecomputer) Recompute(ctx context.Context, assessmentID string) error {
	if m.failError != nil {
		return m.failError
	}
	m.recomputed = append(m.recomputed, assessmentID)
	return nil
}

var _ = Describe("Assessment Service", func() {
	var (
		mockRepo       *MockRepository
		mockBenchmarks *MockBenchmarkProvider
		mockRecomputer *MockRecomputer
		service        *assessment.Service
		logger         *slog.Logger
		ctx            context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockBenchmarks = NewMockBenchmarkProvider()
		mockRecomputer = &MockRecomputer{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = assessment.NewService(mockRepo, mockBenchmarks, mockRecomputer, logger)
		ctx = context.Background()

		mockRepo.cycles["cycle_003"] = &assessment.Cycle{
			ID:            "cycle_003",
			Name:          "Q3 2025 Assessment Cycle",
			StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC),
			IsActiveCycle: true,
		}
		mockBenchmarks.Set("skill_001", 8)
	})

	Describe("Record", func() {
		It("should snapshot the current benchmark and trigger recompute", func() {
			a, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_001",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.BenchmarkAtTime).To(Equal(8))
			Expect(a.Gap()).To(Equal(2))
			Expect(a.IsLocked).To(BeFalse())
			Expect(mockRecomputer.recomputed).To(ContainElement(a.ID))
		})

		It("should reject scores outside the proficiency scale", func() {
			_, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_001",
				Score:      12,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should refuse to record in an inactive cycle", func() {
			mockRepo.cycles["cycle_001"] = &assessment.Cycle{
				ID:            "cycle_001",
				Name:          "Q1 2025 Assessment Cycle",
				StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
				IsActiveCycle: false,
			}

			_, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_001",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_001",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInvalidState))
		})

		It("should fail when the skill has no benchmark", func() {
			_, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_999",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			Expect(err).To(Equal(internal.ErrBenchmarkNotFound))
		})
	})

	Describe("UpdateScore", func() {
		var recorded *assessment.Assessment

		BeforeEach(func() {
			var err error
			recorded, err = service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_001",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should update an unlocked assessment and recompute", func() {
			before := len(mockRecomputer.recomputed)
			updated, err := service.UpdateScore(ctx, recorded.ID, 8, "improved after mentoring")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Score).To(Equal(8))
			Expect(updated.Comments).To(Equal("improved after mentoring"))
			Expect(len(mockRecomputer.recomputed)).To(Equal(before + 1))
		})

		It("should reject updates to a locked assessment", func() {
			Expect(service.Lock(ctx, recorded.ID)).To(Succeed())

			_, err := service.UpdateScore(ctx, recorded.ID, 8, "")
			Expect(err).To(Equal(internal.ErrAssessmentLocked))
		})
	})

	Describe("Lock", func() {
		It("should be idempotent", func() {
			a, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_005",
				SkillID:    "skill_001",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Lock(ctx, a.ID)).To(Succeed())
			Expect(service.Lock(ctx, a.ID)).To(Succeed())

			locked, err := service.GetByID(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(locked.IsLocked).To(BeTrue())
		})

		It("should return not found for an unknown assessment", func() {
			err := service.Lock(ctx, "missing")
			Expect(err).To(Equal(internal.ErrAssessmentNotFound))
		})
	})

	Describe("ApplyDisputeEdit", func() {
		It("should rewrite a locked assessment and keep the lock", func() {
			a, err := service.Record(ctx, assessment.RecordParams{
				EmployeeID: "usr_004",
				SkillID:    "skill_001",
				Score:      6,
				AssessorID: "usr_003",
				CycleID:    "cycle_003",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Lock(ctx, a.ID)).To(Succeed())

			updated, err := service.ApplyDisputeEdit(ctx, a.ID, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Score).To(Equal(8))
			Expect(updated.IsLocked).To(BeTrue())
			Expect(mockRecomputer.recomputed).To(ContainElement(a.ID))
		})
	})

	Describe("CreateCycle", func() {
		It("should create a non-overlapping cycle", func() {
			c, err := service.CreateCycle(ctx, assessment.CycleParams{
				Name:      "Q4 2025 Assessment Cycle",
				StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.IsActiveCycle).To(BeFalse())
		})

		It("should reject a date range that overlaps an existing cycle", func() {
			_, err := service.CreateCycle(ctx, assessment.CycleParams{
				Name:      "Late Q3 Review",
				StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCycleOverlap))
		})

		It("should reject an end date before the start date", func() {
			_, err := service.CreateCycle(ctx, assessment.CycleParams{
				Name:      "Backwards Cycle",
				StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("ActivateCycle", func() {
		It("should leave exactly one active cycle", func() {
			c, err := service.CreateCycle(ctx, assessment.CycleParams{
				Name:      "Q4 2025 Assessment Cycle",
				StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			})
			Expect(err).NotTo(HaveOccurred())

			activated, err := service.ActivateCycle(ctx, c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(activated.IsActiveCycle).To(BeTrue())

			active, err := service.ActiveCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(active.ID).To(Equal(c.ID))

			old, err := service.ListCycles(ctx)
			Expect(err).NotTo(HaveOccurred())
			activeCount := 0
			for _, cycle := range old {
				if cycle.IsActiveCycle {
					activeCount++
				}
			}
			Expect(activeCount).To(Equal(1))
		})

		It("should return not found for an unknown cycle", func() {
			_, err := service.ActivateCycle(ctx, "missing")
			Expect(err).To(Equal(internal.ErrCycleNotFound))
		})
	})
})
