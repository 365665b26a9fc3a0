package dto

// ErrorResponse is the error envelope for all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is a simple confirmation envelope
type MessageResponse struct {
	Message string      `json:"message"`
	Sync    *SyncStatus `json:"sync,omitempty"`
}

// SyncStatus is the soft outcome of a remote sync attempt. A false OK
// means the trip saved locally but did not reach the remote authority.
type SyncStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
