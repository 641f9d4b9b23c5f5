package stats

const (
	RoleTop     = "Top"
	RoleJungle  = "Jungle"
	RoleMid     = "Mid"
	RoleADC     = "ADC"
	RoleSupport = "Support"
)

var positionRoles = map[string]string{
	"TOP":     RoleTop,
	"JUNGLE":  RoleJungle,
	"MIDDLE":  RoleMid,
	"BOTTOM":  RoleADC,
	"UTILITY": RoleSupport,
}

// NormalizeRole maps a Riot teamPosition to its display role. Unknown
// positions pass through unchanged.
func NormalizeRole(position string) string {
	if role, ok := positionRoles[position]; ok {
		return role
	}
	return position
}
