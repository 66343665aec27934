package gate

// Route identifies a screen. RouteHome is the empty segment.
type Route string

const (
	RouteHome            Route = ""
	RouteLogin           Route = "login"
	RouteRegister        Route = "register"
	RouteCreateProfile   Route = "create-profile"
	RouteProfile         Route = "profile"
	RouteProducts        Route = "products"
	RouteTraining        Route = "training"
	RouteRecommendations Route = "recommendations"
)

// isPublic reports whether the route is reachable without a session.
func isPublic(r Route) bool {
	return r == RouteLogin || r == RouteRegister
}

// Decide is the pure navigation guard: given the gate state and the current
// route it returns the route to redirect to, or redirect=false to stay put.
//
// Decide is idempotent: whenever it redirects to a target, deciding again
// for the same state and that target yields no redirect, so redirect loops
// cannot occur. Indeterminate states (loading, profile unknown, check in
// flight) never redirect.
func Decide(s State, current Route) (target Route, redirect bool) {
	switch s {
	case StateLoading, StateProfileUnknown, StateProfileChecking:
		return "", false

	case StateSignedOut:
		if !isPublic(current) {
			return RouteLogin, true
		}
		return "", false

	case StateReady:
		if isPublic(current) || current == RouteCreateProfile {
			return RouteHome, true
		}
		return "", false

	case StateNoProfile:
		if current != RouteCreateProfile {
			return RouteCreateProfile, true
		}
		return "", false
	}
	return "", false
}
