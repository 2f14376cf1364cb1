package training_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/training"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTrainingService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Training Service Suite")
}

// MockRepository implements training.Repository for testing
type MockRepository struct {
	sessions   map[string]*training.Session
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{sessions: make(map[string]*training.Session)}
}

func (m *MockRepository) CreateSession(ctx context.Context, s *training.Session) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

func (m *MockRepository) GetSessionByID(ctx context.Context, id string) (*training.Session, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	s, exists := m.sessions[id]
	if !exists {
		return nil, internal.ErrSessionNotFound
	}
	copied := *s
	copied.Assignments = append([]training.Assignment{}, s.Assignments...)
	return &copied, nil
}

func (m *MockRepository) ListSessions(ctx context.Context) ([]*training.Session, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	result := make([]*training.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result, nil
}

func (m *MockRepository) ListSessionsBySkill(ctx context.Context, skillID string) ([]*training.Session, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*training.Session
	for _, s := range m.sessions {
		if s.SkillID == skillID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockRepository) AddAssignment(ctx context.Context, a *training.Assignment) error {
	if m.shouldFail {
		return m.failError
	}
	s, exists := m.sessions[a.SessionID]
	if !exists {
		return internal.ErrSessionNotFound
	}
	s.Assignments = append(s.Assignments, *a)
	return nil
}

func (m *MockRepository) UpdateAttendance(ctx context.Context, sessionID, employeeID, status string) error {
	if m.shouldFail {
		return m.failError
	}
	s, exists := m.sessions[sessionID]
	if !exists {
		return internal.ErrSessionNotFound
	}
	for i := range s.Assignments {
		if s.Assignments[i].EmployeeID == employeeID {
			s.Assignments[i].AttendanceStatus = status
		}
	}
	return nil
}

func (m *MockRepository) UpdateSessionStatus(ctx context.Context, sessionID, status string) error {
	if m.shouldFail {
		return m.failError
	}
	s, exists := m.sessions[sessionID]
	if !exists {
		return internal.ErrSessionNotFound
	}
	s.Status = status
	return nil
}

// MockNeedMarker implements training.NeedMarker
type MockNeedMarker struct {
	scheduled []string
	resolved  []string
}

func (m *MockNeedMarker) MarkScheduled(ctx context.Context, employeeID, skillID string) error {
	m.scheduled = append(m.scheduled, employeeID+"/"+skillID)
	return nil
}

func (m *MockNeedMarker) MarkResolved(ctx context.Context, employeeID, skillID string) error {
	m.resolved = append(m.resolved, employeeID+"/"+skillID)
	return nil
}

var _ = Describe("Training Service", func() {
	var (
		mockRepo  *MockRepository
		mockNeeds *MockNeedMarker
		service   *training.Service
		ctx       context.Context
	)

	schedule := func(capacity int) *training.Session {
		s, err := service.Schedule(ctx, training.ScheduleParams{
			SkillID:       "skill_006",
			TrainerID:     "usr_003",
			TrainerType:   training.TrainerTypeInternal,
			ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC),
			Mode:          training.ModeOnline,
			Capacity:      capacity,
			CreatedBy:     "usr_001",
		})
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockNeeds = &MockNeedMarker{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = training.NewService(mockRepo, mockNeeds, logger)
		ctx = context.Background()
	})

	Describe("Schedule", func() {
		It("should create a session open for assignment", func() {
			s := schedule(2)
			Expect(s.Status).To(Equal(training.SessionStatusScheduled))
			Expect(s.IsOpenForAssignment()).To(BeTrue())
			Expect(s.Assignments).To(BeEmpty())
		})

		It("should reject an unknown trainer type", func() {
			_, err := service.Schedule(ctx, training.ScheduleParams{
				SkillID:       "skill_006",
				TrainerID:     "usr_003",
				TrainerType:   "freelance",
				ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC),
				Mode:          training.ModeOnline,
				Capacity:      5,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a non-positive capacity", func() {
			_, err := service.Schedule(ctx, training.ScheduleParams{
				SkillID:       "skill_006",
				TrainerID:     "usr_003",
				TrainerType:   training.TrainerTypeInternal,
				ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC),
				Mode:          training.ModeOnline,
				Capacity:      0,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject an end date before the start", func() {
			_, err := service.Schedule(ctx, training.ScheduleParams{
				SkillID:       "skill_006",
				TrainerID:     "usr_003",
				TrainerType:   training.TrainerTypeInternal,
				ScheduledDate: time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC),
				Mode:          training.ModeOnline,
				Capacity:      5,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Assign", func() {
		It("should seat the employee and mark their need scheduled", func() {
			s := schedule(2)
			updated, err := service.Assign(ctx, s.ID, "usr_005")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Assignments).To(HaveLen(1))
			Expect(updated.Assignments[0].AttendanceStatus).To(Equal(training.AttendanceAssigned))
			Expect(mockNeeds.scheduled).To(ContainElement("usr_005/skill_006"))
		})

		It("should refuse a duplicate assignment", func() {
			s := schedule(2)
			_, err := service.Assign(ctx, s.ID, "usr_005")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(ctx, s.ID, "usr_005")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should refuse once the session is at capacity", func() {
			s := schedule(1)
			_, err := service.Assign(ctx, s.ID, "usr_005")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(ctx, s.ID, "usr_004")
			Expect(err).To(Equal(internal.ErrSessionFull))
		})

		It("should refuse assignment to a completed session", func() {
			s := schedule(2)
			_, err := service.Complete(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(ctx, s.ID, "usr_005")
			Expect(err).To(Equal(internal.ErrSessionNotOpen))
		})

		It("should return not found for an unknown session", func() {
			_, err := service.Assign(ctx, "missing", "usr_005")
			Expect(err).To(Equal(internal.ErrSessionNotFound))
		})
	})

	Describe("MarkAttendance", func() {
		It("should record attendance for an assigned employee", func() {
			s := schedule(2)
			_, err := service.Assign(ctx, s.ID, "usr_005")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.MarkAttendance(ctx, s.ID, "usr_005", training.AttendanceAttended)).To(Succeed())

			updated, err := service.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Assignments[0].AttendanceStatus).To(Equal(training.AttendanceAttended))
		})

		It("should reject an unknown attendance status", func() {
			s := schedule(2)
			err := service.MarkAttendance(ctx, s.ID, "usr_005", "late")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject attendance for an unassigned employee", func() {
			s := schedule(2)
			err := service.MarkAttendance(ctx, s.ID, "usr_999", training.AttendanceAttended)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Complete", func() {
		It("should resolve needs only for attendees", func() {
			s := schedule(3)
			_, err := service.Assign(ctx, s.ID, "usr_005")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Assign(ctx, s.ID, "usr_004")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.MarkAttendance(ctx, s.ID, "usr_005", training.AttendanceAttended)).To(Succeed())
			Expect(service.MarkAttendance(ctx, s.ID, "usr_004", training.AttendanceMissed)).To(Succeed())

			completed, err := service.Complete(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(training.SessionStatusCompleted))
			Expect(mockNeeds.resolved).To(ConsistOf("usr_005/skill_006"))
		})

		It("should refuse to complete twice", func() {
			s := schedule(2)
			_, err := service.Complete(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Complete(ctx, s.ID)
			Expect(err).To(Equal(internal.ErrSessionNotOpen))
		})
	})

	Describe("ListSessions", func() {
		It("should filter by skill when one is given", func() {
			schedule(2)
			_, err := service.Schedule(ctx, training.ScheduleParams{
				SkillID:       "skill_001",
				TrainerID:     "usr_003",
				TrainerType:   training.TrainerTypeExternal,
				ScheduledDate: time.Date(2025, 8, 5, 9, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 8, 5, 17, 0, 0, 0, time.UTC),
				Mode:          training.ModeOffline,
				Capacity:      10,
			})
			Expect(err).NotTo(HaveOccurred())

			all, err := service.ListSessions(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			filtered, err := service.ListSessions(ctx, "skill_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].SkillID).To(Equal("skill_001"))
		})
	})
})
