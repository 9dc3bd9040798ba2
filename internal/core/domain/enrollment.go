package domain

// Enrollment links a client to a program with enrollment metadata.
// program_name and program_code are denormalized by the registry for display.
type Enrollment struct {
	ID             int64    `json:"id"`
	Client         ClientID `json:"client,omitempty"`
	ProgramID      int64    `json:"program"`
	ProgramName    string   `json:"program_name,omitempty"`
	ProgramCode    string   `json:"program_code,omitempty"`
	EnrollmentDate string   `json:"enrollment_date"`
	IsActive       bool     `json:"is_active"`
	FacilityName   string   `json:"facility_name,omitempty"`
	MFLCode        string   `json:"mfl_code,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}
