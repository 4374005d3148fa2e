package emergency

// Actor identifies the signed-in user performing a lifecycle
// transition, as carried in the session token claims.
type Actor struct {
	ID   string
	Name string
	Role string
}

type CreateRequest struct {
	EmergencyType string    `json:"emergency_type"`
	Message       string    `json:"message"`
	Location      *Location `json:"location"`
}
