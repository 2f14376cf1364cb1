package access

// Surface is a distinct application area a role may enter. The presentation
// layer renders one navigation card per accessible surface.
type Surface string

const (
	SurfaceEmployee    Surface = "employee"
	SurfaceTeamLead    Surface = "team_lead"
	SurfaceSystemAdmin Surface = "system_administrator"
)

func SurfaceStrings(surfaces []Surface) []string {
	result := make([]string, len(surfaces))
	for i, s := range surfaces {
		result[i] = string(s)
	}
	return result
}

func Contains(surfaces []Surface, surface Surface) bool {
	for _, s := range surfaces {
		if s == surface {
			return true
		}
	}
	return false
}
