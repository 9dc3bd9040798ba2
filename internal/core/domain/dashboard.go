package domain

// DashboardSummary is the read-only aggregate served by the registry's
// dashboard endpoint. It is recomputed server-side on every fetch and never
// mutated by the gateway.
type DashboardSummary struct {
	Clients         ClientStats   `json:"clients"`
	Programs        ProgramStats  `json:"programs"`
	Enrollments     EnrollmentAgg `json:"enrollments"`
	ClientsByCounty []CountyCount `json:"clients_by_county"`
}

type ClientStats struct {
	Total        int `json:"total"`
	NewThisMonth int `json:"new_this_month"`
}

type ProgramStats struct {
	Active int `json:"active"`
	Total  int `json:"total"`
}

type EnrollmentAgg struct {
	ByStatus  []StatusCount  `json:"by_status"`
	ByProgram []ProgramCount `json:"by_program"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ProgramCount keeps the registry's double-underscore field name on the wire.
type ProgramCount struct {
	ProgramName string `json:"program__name"`
	Count       int    `json:"count"`
}

type CountyCount struct {
	County string `json:"county"`
	Count  int    `json:"count"`
}

// Empty reports whether the summary carries no data at all, which the
// dashboard renders as a distinct empty state.
func (d DashboardSummary) Empty() bool {
	return d.Clients.Total == 0 && d.Programs.Total == 0 &&
		len(d.Enrollments.ByStatus) == 0 && len(d.Enrollments.ByProgram) == 0
}
