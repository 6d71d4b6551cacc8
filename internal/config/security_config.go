package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Operator access token required
)

// EndpointSecurityConfig maps "METHOD route-template" to the required security level.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"GET /health":              SecurityPublic,
	"POST /api/v1/auth/login":  SecurityPublic,
	"GET /api/v1/vehicles":     SecurityPublic,
	"GET /api/v1/availability": SecurityPublic,
	"POST /api/v1/quotes":      SecurityPublic,
}

// GetSecurityLevel returns the security level for a route. Unknown routes need a token.
func GetSecurityLevel(method, routeTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+routeTemplate]; exists {
		return level
	}
	return SecurityAccess
}
