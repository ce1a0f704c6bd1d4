package constants

// Static route constants
const (
	PublicRoute     = "/"
	LoginRoute      = "/login"
	RegisterRoute   = "/register"
	BoardsRoute     = "/boards"
	DraftsRoute     = "/drafts"
	ChallengesRoute = "/challenges"
)
