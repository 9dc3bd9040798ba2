package domain

// DateLayout is the fixed calendar-date form the upstream registry expects on
// every date field. Submitted payloads never carry any other representation.
const DateLayout = "2006-01-02"

// ClientID is the opaque identifier of a client record. The upstream registry
// has historically exposed both numeric ids and UUIDs depending on endpoint;
// callers must never infer anything from the string's shape.
type ClientID string

func (id ClientID) String() string { return string(id) }

// Gender is the client gender enumeration used by the registry.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Client is a patient/beneficiary record as served by the upstream registry.
// Calendar dates stay in their wire form (DateLayout strings).
type Client struct {
	ID          ClientID `json:"client_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	IDNumber    string   `json:"id_number,omitempty"`
	DateOfBirth string   `json:"date_of_birth"`
	Age         int      `json:"age,omitempty"`
	Gender      Gender   `json:"gender"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Email       string   `json:"email,omitempty"`
	County      string   `json:"county"`
	SubCounty   string   `json:"sub_county"`
	Ward        string   `json:"ward,omitempty"`
	BloodType   string   `json:"blood_type,omitempty"`
	Allergies   string   `json:"allergies,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// FullName returns the display name used in selection lists and
// cross-referenced rows.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
