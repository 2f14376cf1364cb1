package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/skillbridge/skillbridge/internal"
	disputeDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/dispute"
	"github.com/skillbridge/skillbridge/internal/dispute"
	disputePostgres "github.com/skillbridge/skillbridge/internal/dispute/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDisputePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispute Postgres Suite")
}

var _ = Describe("Dispute PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo dispute.Repository
		ctx  context.Context
	)

	newDispute := func(id string, submittedAt time.Time) *dispute.Dispute {
		return &dispute.Dispute{
			ID:         id,
			EmployeeID: "usr_004",
			CycleID:    "cycle_003",
			Reason:     "score does not reflect recent project work",
			Status:     dispute.StatusOpen,
			DisputedSkills: []dispute.DisputedSkill{
				{SkillID: "skill_003", OriginalScore: 6, Reason: "led the client workshops"},
				{SkillID: "skill_007", OriginalScore: 5},
			},
			SubmittedAt: submittedAt,
		}
	}

	resolution := func(action string) dispute.Resolution {
		notes := "reviewed with the team lead"
		return dispute.Resolution{
			Status:    dispute.StatusResolved,
			AdminID:   "usr_001",
			Action:    action,
			Notes:     &notes,
			Timestamp: time.Date(2025, 7, 20, 14, 0, 0, 0, time.UTC),
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&disputeDatamodel.Dispute{},
			&disputeDatamodel.DisputeSkill{},
			&disputeDatamodel.AuditEntry{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = disputePostgres.NewDisputeRepository(db)
		ctx = context.Background()
	})

	Describe("Create and GetByID", func() {
		It("should persist the dispute with its skill line items in order", func() {
			submitted := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
			Expect(repo.Create(ctx, newDispute("disp_001", submitted))).To(Succeed())

			stored, err := repo.GetByID(ctx, "disp_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(dispute.StatusOpen))
			Expect(stored.DisputedSkills).To(HaveLen(2))
			Expect(stored.DisputedSkills[0].SkillID).To(Equal("skill_003"))
			Expect(stored.DisputedSkills[0].OriginalScore).To(Equal(6))
			Expect(stored.DisputedSkills[0].NewScore).To(BeNil())
			Expect(stored.DisputedSkills[1].SkillID).To(Equal("skill_007"))
		})

		It("should return not found for an unknown dispute", func() {
			_, err := repo.GetByID(ctx, "disp_999")
			Expect(err).To(Equal(internal.ErrDisputeNotFound))
		})
	})

	Describe("UpdateResolution", func() {
		BeforeEach(func() {
			Expect(repo.Create(ctx, newDispute("disp_001", time.Now()))).To(Succeed())
		})

		It("should resolve an open dispute", func() {
			applied, err := repo.UpdateResolution(ctx, "disp_001", resolution(dispute.ActionUpholdOriginal))
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeTrue())

			stored, err := repo.GetByID(ctx, "disp_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(dispute.StatusResolved))
			Expect(*stored.ResolvedByAdminID).To(Equal("usr_001"))
			Expect(*stored.ResolutionAction).To(Equal(dispute.ActionUpholdOriginal))
		})

		It("should refuse a second resolution of the same dispute", func() {
			applied, err := repo.UpdateResolution(ctx, "disp_001", resolution(dispute.ActionUpholdOriginal))
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeTrue())

			applied, err = repo.UpdateResolution(ctx, "disp_001", resolution(dispute.ActionEditRating))
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeFalse())

			stored, err := repo.GetByID(ctx, "disp_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.ResolutionAction).To(Equal(dispute.ActionUpholdOriginal))
		})

		It("should report false for an unknown dispute", func() {
			applied, err := repo.UpdateResolution(ctx, "disp_999", resolution(dispute.ActionReject))
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeFalse())
		})
	})

	Describe("SetSkillNewScore", func() {
		It("should record the corrected score on one line item only", func() {
			Expect(repo.Create(ctx, newDispute("disp_001", time.Now()))).To(Succeed())
			Expect(repo.SetSkillNewScore(ctx, "disp_001", "skill_003", 8)).To(Succeed())

			stored, err := repo.GetByID(ctx, "disp_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.DisputedSkills[0].NewScore).NotTo(BeNil())
			Expect(*stored.DisputedSkills[0].NewScore).To(Equal(8))
			Expect(stored.DisputedSkills[1].NewScore).To(BeNil())
		})
	})

	Describe("audit trail", func() {
		It("should append entries and replay them in order", func() {
			Expect(repo.Create(ctx, newDispute("disp_001", time.Now()))).To(Succeed())

			base := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
			Expect(repo.AppendAudit(ctx, &dispute.AuditEntry{
				DisputeID: "disp_001",
				Action:    dispute.AuditActionSubmitted,
				ActorID:   "usr_004",
				ActorType: dispute.ActorTypeEmployee,
				Timestamp: base,
			})).To(Succeed())
			Expect(repo.AppendAudit(ctx, &dispute.AuditEntry{
				DisputeID: "disp_001",
				Action:    dispute.AuditActionResolved,
				ActorID:   "usr_001",
				ActorType: dispute.ActorTypeAdmin,
				Timestamp: base.Add(48 * time.Hour),
				Details:   "score corrected to 8",
			})).To(Succeed())

			trail, err := repo.GetAuditTrail(ctx, "disp_001")
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(2))
			Expect(trail[0].Action).To(Equal(dispute.AuditActionSubmitted))
			Expect(trail[0].ActorType).To(Equal(dispute.ActorTypeEmployee))
			Expect(trail[1].Action).To(Equal(dispute.AuditActionResolved))
			Expect(trail[1].Details).To(Equal("score corrected to 8"))
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			older := newDispute("disp_001", time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC))
			newer := newDispute("disp_002", time.Date(2025, 7, 18, 9, 0, 0, 0, time.UTC))
			other := newDispute("disp_003", time.Date(2025, 7, 12, 9, 0, 0, 0, time.UTC))
			other.EmployeeID = "usr_007"

			for _, d := range []*dispute.Dispute{older, newer, other} {
				Expect(repo.Create(ctx, d)).To(Succeed())
			}

			applied, err := repo.UpdateResolution(ctx, "disp_001", resolution(dispute.ActionUpholdOriginal))
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeTrue())
		})

		It("should list an employee's disputes newest first", func() {
			disputes, err := repo.ListByEmployee(ctx, "usr_004")
			Expect(err).NotTo(HaveOccurred())
			Expect(disputes).To(HaveLen(2))
			Expect(disputes[0].ID).To(Equal("disp_002"))
			Expect(disputes[1].ID).To(Equal("disp_001"))
		})

		It("should list open disputes oldest first for the review queue", func() {
			disputes, err := repo.ListByStatus(ctx, dispute.StatusOpen)
			Expect(err).NotTo(HaveOccurred())
			Expect(disputes).To(HaveLen(2))
			Expect(disputes[0].ID).To(Equal("disp_003"))
			Expect(disputes[1].ID).To(Equal("disp_002"))
		})
	})
})
