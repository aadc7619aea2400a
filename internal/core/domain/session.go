package domain

// Session is a point-in-time view of the auth session state.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

// SessionRecord is the minimal session persisted next to the bare token so a
// restart can resolve the owning user.
type SessionRecord struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// RegistryStatus exposes the advisory loading flag and last error of a registry.
type RegistryStatus struct {
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
}
