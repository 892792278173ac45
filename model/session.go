package model

type SessionStatus string

const (
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionAuthenticating  SessionStatus = "authenticating"
	SessionLoading         SessionStatus = "loading"
	SessionReady           SessionStatus = "ready"
	// SessionDegraded means the user is logged in but one or more secondary
	// fetches failed. Recoverable with a manual retry.
	SessionDegraded SessionStatus = "degraded"
)

// FetchOp identifies one of the controller's remote fetches. Failed ops are
// recorded on the session so that a retry replays exactly those fetches.
type FetchOp string

const (
	OpLeagues FetchOp = "leagues"
	OpRosters FetchOp = "rosters"
	OpUsers   FetchOp = "users"
	OpCatalog FetchOp = "catalog"
	OpStats   FetchOp = "stats"
	OpPicks   FetchOp = "draft_picks"
)

// SessionState is a snapshot of everything the presentation layer needs to
// render the dashboard. The controller owns the live copy; handlers only
// ever see value copies of it.
type SessionState struct {
	Status  SessionStatus
	User    *User
	Leagues []League
	League  *League
	Rosters []Roster
	Users   []User
	Year    string
	Week    int

	// Failed lists the fetches that did not complete for the current
	// selection. LastError is the most recent recorded error, rendered in
	// the global error banner while stale data stays visible underneath.
	Failed    []FetchOp
	LastError string
}

func (s *SessionState) Authenticated() bool {
	return s.Status != SessionUnauthenticated && s.Status != SessionAuthenticating
}

// UserByID finds a league member in the snapshot.
func (s *SessionState) UserByID(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// RosterForUser finds the roster owned by the given user, if any.
func (s *SessionState) RosterForUser(userID string) *Roster {
	for i := range s.Rosters {
		if s.Rosters[i].OwnerID == userID {
			return &s.Rosters[i]
		}
	}
	return nil
}
