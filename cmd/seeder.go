package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		seedUsers(db)
		seedSkillCatalog(db)
		seedCycles(db)
		seedAssessments(db)
		seedTrainingNeeds(db)

		fmt.Println("Seeding finished")
	},
}

// clearSeedData truncates in dependency order so foreign keys never block.
func clearSeedData(db *gorm.DB) {
	tables := []string{
		"session_assignments",
		"training_sessions",
		"training_needs",
		"dispute_audit_entries",
		"dispute_skills",
		"disputes",
		"assessments",
		"assessment_cycles",
		"skill_benchmarks",
		"skills",
		"skill_criticalities",
		"skill_categories",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedUsers(db *gorm.DB) {
	type seedUser struct {
		ID         string
		ExternalID string
		Email      string
		FirstName  string
		LastName   string
		EmployeeID string
		JobTitle   string
		Department string
		TeamLeadID *string
		SystemRole string
	}

	lead := func(id string) *string { return &id }

	users := []seedUser{
		{"usr_001", "auth_001", "sarah.mitchell@skillbridge.com", "Sarah", "Mitchell", "EMP001", "System Administrator", "dept_001", nil, "systemAdmin"},
		{"usr_002", "auth_002", "james.rodriguez@skillbridge.com", "James", "Rodriguez", "EMP002", "System Administrator", "dept_001", nil, "systemAdmin"},
		{"usr_003", "auth_003", "david.chen@skillbridge.com", "David", "Chen", "EMP003", "Engineering Lead", "dept_002", nil, "employee"},
		{"usr_004", "auth_004", "jennifer.anderson@skillbridge.com", "Jennifer", "Anderson", "EMP004", "Senior Software Engineer", "dept_002", lead("usr_003"), "employee"},
		{"usr_005", "auth_005", "michael.thompson@skillbridge.com", "Michael", "Thompson", "EMP005", "Junior Software Engineer", "dept_002", lead("usr_003"), "employee"},
		{"usr_006", "auth_006", "maria.garcia@skillbridge.com", "Maria", "Garcia", "EMP006", "Sales Manager", "dept_003", nil, "employee"},
		{"usr_007", "auth_007", "robert.johnson@skillbridge.com", "Robert", "Johnson", "EMP007", "Sales Executive", "dept_003", lead("usr_006"), "employee"},
		{"usr_008", "auth_008", "lisa.wang@skillbridge.com", "Lisa", "Wang", "EMP008", "Sales Executive", "dept_003", lead("usr_006"), "employee"},
		{"usr_009", "auth_009", "christopher.park@skillbridge.com", "Christopher", "Park", "EMP009", "HR Manager", "dept_004", nil, "employee"},
		{"usr_010", "auth_010", "amanda.martinez@skillbridge.com", "Amanda", "Martinez", "EMP010", "HR Specialist", "dept_004", lead("usr_009"), "employee"},
	}

	for _, u := range users {
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO users (id, external_id, email, first_name, last_name, employee_id, job_title, department_id, team_lead_id, system_role, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'active', now(), now())",
			u.ID, u.ExternalID, u.Email, u.FirstName, u.LastName, u.EmployeeID, u.JobTitle, u.Department, u.TeamLeadID, u.SystemRole,
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

func seedSkillCatalog(db *gorm.DB) {
	categories := []struct {
		ID   string
		Name string
	}{
		{"cat_001", "Technical"},
		{"cat_002", "Behavioral"},
		{"cat_003", "Leadership"},
	}

	for _, c := range categories {
		var exists int
		if err := db.Raw("SELECT 1 FROM skill_categories WHERE name = ?", c.Name).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO skill_categories (id, name, status, created_at, updated_at) VALUES (?, ?, 'active', now(), now())", c.ID, c.Name).Error; err != nil {
				log.Fatalf("failed to insert skill category %s: %v", c.Name, err)
			}
		}
	}

	criticalities := []struct {
		ID     string
		Name   string
		Weight float64
	}{
		{"crit_001", "Mission Critical", 3.0},
		{"crit_002", "High", 2.0},
		{"crit_003", "Medium", 1.0},
	}

	for _, c := range criticalities {
		var exists int
		if err := db.Raw("SELECT 1 FROM skill_criticalities WHERE name = ?", c.Name).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO skill_criticalities (id, name, weight, status, created_at, updated_at) VALUES (?, ?, ?, 'active', now(), now())", c.ID, c.Name, c.Weight).Error; err != nil {
				log.Fatalf("failed to insert skill criticality %s: %v", c.Name, err)
			}
		}
	}

	skills := []struct {
		ID            string
		Name          string
		Desc          string
		CategoryID    string
		CriticalityID string
		Benchmark     int
	}{
		{"skill_001", "Java Programming", "Core Java development including OOP principles, design patterns, and enterprise frameworks", "cat_001", "crit_001", 8},
		{"skill_002", "Python Development", "Python programming for data science, web development, and automation", "cat_001", "crit_001", 7},
		{"skill_003", "Communication", "Effective verbal and written communication in professional settings", "cat_002", "crit_002", 7},
		{"skill_004", "Team Leadership", "Leading teams, delegating effectively, and fostering collaboration", "cat_003", "crit_002", 8},
		{"skill_005", "Sales Negotiation", "Negotiating deals and closing sales effectively", "cat_002", "crit_001", 8},
		{"skill_006", "Database Design", "Designing and optimizing relational and non-relational databases", "cat_001", "crit_001", 9},
		{"skill_007", "Problem Solving", "Analytical thinking and systematic approach to complex challenges", "cat_002", "crit_002", 7},
		{"skill_008", "Customer Service", "Delivering excellent customer experiences and handling complaints", "cat_002", "crit_002", 8},
	}

	for _, s := range skills {
		var exists int
		if err := db.Raw("SELECT 1 FROM skills WHERE name = ?", s.Name).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO skills (id, name, description, category_id, criticality_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 'active', now(), now())",
			s.ID, s.Name, s.Desc, s.CategoryID, s.CriticalityID,
		).Error; err != nil {
			log.Fatalf("failed to insert skill %s: %v", s.Name, err)
		}

		if err := db.Exec(
			"INSERT INTO skill_benchmarks (id, skill_id, score, effective_start_date, effective_end_date, created_by, created_at) VALUES (?, ?, ?, '2024-01-20T00:00:00Z', NULL, 'usr_001', now())",
			"bench_"+s.ID, s.ID, s.Benchmark,
		).Error; err != nil {
			log.Fatalf("failed to insert benchmark for %s: %v", s.Name, err)
		}
		fmt.Printf("Seeded skill %s with benchmark %d\n", s.Name, s.Benchmark)
	}
}

func seedCycles(db *gorm.DB) {
	cycles := []struct {
		ID       string
		Name     string
		Start    string
		End      string
		IsActive bool
		Status   string
	}{
		{"cycle_001", "Q1 2025 Assessment Cycle", "2025-01-01T00:00:00Z", "2025-03-31T23:59:59Z", false, "closed"},
		{"cycle_002", "Q2 2025 Assessment Cycle", "2025-04-01T00:00:00Z", "2025-06-30T23:59:59Z", false, "closed"},
		{"cycle_003", "Q3 2025 Assessment Cycle", "2025-07-01T00:00:00Z", "2025-09-30T23:59:59Z", true, "active"},
	}

	for _, c := range cycles {
		var exists int
		if err := db.Raw("SELECT 1 FROM assessment_cycles WHERE name = ?", c.Name).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO assessment_cycles (id, name, start_date, end_date, is_active_cycle, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
			c.ID, c.Name, c.Start, c.End, c.IsActive, c.Status,
		).Error; err != nil {
			log.Fatalf("failed to insert assessment cycle %s: %v", c.Name, err)
		}
		fmt.Println("Seeded assessment cycle:", c.Name)
	}
}

type seedAssessment struct {
	ID         string
	EmployeeID string
	SkillID    string
	Score      int
	Benchmark  int
	Comments   string
	AssessorID string
	Timestamp  string
	TNIFlag    bool
}

var demoAssessments = []seedAssessment{
	{"assess_001", "usr_004", "skill_001", 9, 8, "Excellent grasp of Java frameworks and design patterns", "usr_003", "2025-07-05T14:30:00Z", false},
	{"assess_002", "usr_004", "skill_002", 7, 7, "Competent in Python, working on advanced data science libraries", "usr_003", "2025-07-05T14:35:00Z", false},
	{"assess_003", "usr_004", "skill_003", 6, 7, "Good communication in technical contexts but needs improvement in executive presentations", "usr_003", "2025-07-05T14:40:00Z", true},
	{"assess_004", "usr_004", "skill_007", 8, 7, "Demonstrates strong analytical and creative problem-solving abilities", "usr_003", "2025-07-05T14:45:00Z", false},
	{"assess_005", "usr_005", "skill_001", 6, 8, "Still developing expertise in enterprise Java patterns and frameworks", "usr_003", "2025-07-08T10:15:00Z", true},
	{"assess_006", "usr_005", "skill_006", 5, 9, "Needs significant improvement in database optimization and complex query design", "usr_003", "2025-07-08T10:20:00Z", true},
	{"assess_007", "usr_005", "skill_007", 7, 7, "Good problem-solving skills for standard development challenges", "usr_003", "2025-07-08T10:25:00Z", false},
	{"assess_008", "usr_007", "skill_005", 8, 8, "Excellent negotiation skills demonstrated in recent client negotiations", "usr_006", "2025-07-10T15:00:00Z", false},
	{"assess_009", "usr_007", "skill_003", 7, 7, "Clear communicator with good presentation skills", "usr_006", "2025-07-10T15:10:00Z", false},
	{"assess_010", "usr_007", "skill_008", 9, 8, "Exceptional customer service, consistently receives positive feedback", "usr_006", "2025-07-10T15:20:00Z", false},
}

func seedAssessments(db *gorm.DB) {
	for _, a := range demoAssessments {
		var exists int
		if err := db.Raw("SELECT 1 FROM assessments WHERE id = ?", a.ID).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO assessments (id, employee_id, skill_id, score, benchmark_at_time, comments, assessor_id, cycle_id, is_locked, tni_flag, status, assessment_timestamp, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'cycle_003', true, ?, 'active', ?, now(), now())",
			a.ID, a.EmployeeID, a.SkillID, a.Score, a.Benchmark, a.Comments, a.AssessorID, a.TNIFlag, a.Timestamp,
		).Error; err != nil {
			log.Fatalf("failed to insert assessment %s: %v", a.ID, err)
		}
	}
	fmt.Println("Seeded assessments")
}

// seedTrainingNeeds derives needs from the flagged assessments so the seeded
// state matches what a recompute over the same data would produce.
func seedTrainingNeeds(db *gorm.DB) {
	weights := map[string]float64{
		"skill_001": 3.0, "skill_002": 3.0, "skill_005": 3.0, "skill_006": 3.0,
		"skill_003": 2.0, "skill_004": 2.0, "skill_007": 2.0, "skill_008": 2.0,
	}

	for _, a := range demoAssessments {
		if !a.TNIFlag {
			continue
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM training_needs WHERE source_assessment_id = ?", a.ID).Row().Scan(&exists); err == nil {
			continue
		}

		gap := a.Benchmark - a.Score
		if err := db.Exec(
			"INSERT INTO training_needs (id, employee_id, skill_id, gap, benchmark_score, employee_score, criticality_weight, status, source_assessment_id, assessed_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'trainingRequired', ?, ?, now(), now())",
			"need_"+a.ID, a.EmployeeID, a.SkillID, gap, a.Benchmark, a.Score, weights[a.SkillID], a.ID, a.Timestamp,
		).Error; err != nil {
			log.Fatalf("failed to insert training need for %s: %v", a.ID, err)
		}
		fmt.Printf("Seeded training need for %s / %s (gap %d)\n", a.EmployeeID, a.SkillID, gap)
	}
}
