package access

import (
	"context"
	"log/slog"

	"github.com/skillbridge/skillbridge/internal/identity"
)

// ReporteeCounter reports how many other active users name the given
// employee id as their team lead.
type ReporteeCounter interface {
	CountActiveReportees(ctx context.Context, employeeID string) (int, error)
}

type Service struct {
	reportees ReporteeCounter
	logger    *slog.Logger
}

func NewService(reportees ReporteeCounter, logger *slog.Logger) *Service {
	return &Service{
		reportees: reportees,
		logger:    logger,
	}
}

// AccessibleSurfaces derives the surfaces a user may enter. team_lead is
// never a stored role: it is recomputed from the live reporting graph on
// every call, so reassigning a report changes access immediately.
//
// If the reportee lookup fails the classifier degrades by excluding
// team_lead rather than failing the whole resolution: deny the extra
// surface, never the login.
func (s *Service) AccessibleSurfaces(ctx context.Context, user *identity.User) []Surface {
	surfaces := make([]Surface, 0, 3)

	if user.SystemRole == identity.SystemRoleAdmin {
		surfaces = append(surfaces, SurfaceSystemAdmin)
	}

	if user.SystemRole == identity.SystemRoleEmployee || user.SystemRole == identity.SystemRoleNone {
		surfaces = append(surfaces, SurfaceEmployee)
	}

	if user.EmployeeID != "" {
		count, err := s.reportees.CountActiveReportees(ctx, user.EmployeeID)
		if err != nil {
			s.logger.Warn("reportee lookup failed, excluding team_lead surface",
				"error", err,
				"user_id", user.ID,
				"employee_id", user.EmployeeID)
		} else if count > 0 {
			surfaces = append(surfaces, SurfaceTeamLead)
		}
	}

	return surfaces
}
