package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No login needed
	SecuritySession                      // Valid operator session required
)

// CommandSecurityConfig maps console commands to their required security level.
// Commands missing from the map require a session.
var CommandSecurityConfig = map[string]SecurityLevel{
	"register": SecurityPublic,
	"version":  SecurityPublic,

	"report-overdue": SecuritySession,
	"report-revenue": SecuritySession,
	"report-all":     SecuritySession,
	"inventory":      SecuritySession,
	"members":        SecuritySession,
	"watch":          SecuritySession,
}

// RequiredLevel returns the security level of a command
func RequiredLevel(command string) SecurityLevel {
	if level, ok := CommandSecurityConfig[command]; ok {
		return level
	}
	return SecuritySession
}
