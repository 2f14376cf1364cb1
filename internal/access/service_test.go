package access_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/identity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAccessService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Service Suite")
}

// MockReporteeCounter implements access.ReporteeCounter for testing
type MockReporteeCounter struct {
	counts     map[string]int
	shouldFail bool
	failError  error
}

func NewMockReporteeCounter() *MockReporteeCounter {
	return &MockReporteeCounter{counts: make(map[string]int)}
}

func (m *MockReporteeCounter) CountActiveReportees(ctx context.Context, employeeID string) (int, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return m.counts[employeeID], nil
}

var _ = Describe("Access Service", func() {
	var (
		mockCounter *MockReporteeCounter
		service     *access.Service
		ctx         context.Context
	)

	BeforeEach(func() {
		mockCounter = NewMockReporteeCounter()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = access.NewService(mockCounter, logger)
		ctx = context.Background()
	})

	Describe("AccessibleSurfaces", func() {
		Context("for a plain employee with no reportees", func() {
			It("should grant only the employee surface", func() {
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_005",
					EmployeeID: "EMP005",
					SystemRole: identity.SystemRoleEmployee,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceEmployee))
			})
		})

		Context("for an employee with at least one active reportee", func() {
			BeforeEach(func() {
				mockCounter.counts["EMP003"] = 2
			})

			It("should add the team_lead surface", func() {
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_003",
					EmployeeID: "EMP003",
					SystemRole: identity.SystemRoleEmployee,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceEmployee, access.SurfaceTeamLead))
			})
		})

		Context("for a system administrator", func() {
			It("should grant the admin surface without the employee surface", func() {
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_001",
					EmployeeID: "EMP001",
					SystemRole: identity.SystemRoleAdmin,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceSystemAdmin))
			})

			It("should still add team_lead when the admin has reportees", func() {
				mockCounter.counts["EMP001"] = 1
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_001",
					EmployeeID: "EMP001",
					SystemRole: identity.SystemRoleAdmin,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceSystemAdmin, access.SurfaceTeamLead))
			})
		})

		Context("when the reportee lookup fails", func() {
			BeforeEach(func() {
				mockCounter.counts["EMP003"] = 2
				mockCounter.shouldFail = true
				mockCounter.failError = errors.New("connection refused")
			})

			It("should degrade by excluding team_lead instead of failing", func() {
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_003",
					EmployeeID: "EMP003",
					SystemRole: identity.SystemRoleEmployee,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceEmployee))
			})
		})

		Context("for a record with an unknown stored role", func() {
			It("should default to the employee surface", func() {
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_999",
					EmployeeID: "EMP999",
					SystemRole: identity.SystemRoleNone,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceEmployee))
			})
		})

		Context("for a user without an employee id", func() {
			It("should never consult the reporting graph", func() {
				mockCounter.shouldFail = true
				mockCounter.failError = errors.New("should not be called")
				surfaces := service.AccessibleSurfaces(ctx, &identity.User{
					ID:         "usr_100",
					SystemRole: identity.SystemRoleEmployee,
				})
				Expect(surfaces).To(ConsistOf(access.SurfaceEmployee))
			})
		})
	})

	Describe("Contains", func() {
		It("should report surface membership", func() {
			surfaces := []access.Surface{access.SurfaceEmployee, access.SurfaceTeamLead}
			Expect(access.Contains(surfaces, access.SurfaceTeamLead)).To(BeTrue())
			Expect(access.Contains(surfaces, access.SurfaceSystemAdmin)).To(BeFalse())
		})
	})
})
