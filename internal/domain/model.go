package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Client is a customer of the office. It owns zero or more projects.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Projects  []Project `json:"projects"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientSummary is a client without its projects, embedded in project
// responses.
type ClientSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary drops the project list.
func (c Client) Summary() *ClientSummary {
	return &ClientSummary{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Project is a site or engagement carried out for a client.
type Project struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Location  Location       `json:"location"`
	Budget    float64        `json:"budget"`
	Manager   string         `json:"manager"`
	ClientID  int64          `json:"clientId"`
	Client    *ClientSummary `json:"client,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ClientFields is the writable part of a Client.
type ClientFields struct {
	Name  string
	Email string
	Phone string
}

// Normalize trims the fields and checks the required ones.
func (f ClientFields) Normalize() (ClientFields, error) {
	out := ClientFields{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
	}
	if out.Name == "" {
		return out, Required("name")
	}
	if out.Email == "" {
		return out, Required("email")
	}
	addr, err := mail.ParseAddress(out.Email)
	if err != nil {
		return out, Invalid("email", "email is not a valid address")
	}
	// Only the bare address is stored, never a display name.
	out.Email = addr.Address
	return out, nil
}

// ProjectFields is the writable part of a Project after parsing.
type ProjectFields struct {
	Name     string
	ClientID int64
	Address  string
	Location Location
	Budget   float64
	Manager  string
}

// Validate checks the invariants every stored project must hold.
func (f ProjectFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return Required("name")
	}
	if f.ClientID <= 0 {
		return Invalid("clientId", "clientId must be a positive integer")
	}
	if !f.Location.Valid() {
		return Invalid("location", "location must be INSIDE or OUTSIDE")
	}
	if f.Budget < 0 {
		return Invalid("budget", "budget must not be negative")
	}
	return nil
}

// ProjectPatch carries the fields of a project update. Nil fields keep
// their stored value.
type ProjectPatch struct {
	Name     *string
	ClientID *int64
	Address  *string
	Location *Location
	Budget   *float64
	Manager  *string
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.ClientID == nil && p.Address == nil &&
		p.Location == nil && p.Budget == nil && p.Manager == nil
}

// Validate checks only the supplied fields.
func (p ProjectPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Required("name")
	}
	if p.ClientID != nil && *p.ClientID <= 0 {
		return Invalid("clientId", "clientId must be a positive integer")
	}
	if p.Location != nil && !p.Location.Valid() {
		return Invalid("location", "location must be INSIDE or OUTSIDE")
	}
	if p.Budget != nil && *p.Budget < 0 {
		return Invalid("budget", "budget must not be negative")
	}
	return nil
}

// Apply returns a copy of p with the patch applied.
func (p ProjectPatch) Apply(cur Project) Project {
	if p.Name != nil {
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.ClientID != nil {
		cur.ClientID = *p.ClientID
	}
	if p.Address != nil {
		cur.Address = *p.Address
	}
	if p.Location != nil {
		cur.Location = *p.Location
	}
	if p.Budget != nil {
		cur.Budget = *p.Budget
	}
	if p.Manager != nil {
		cur.Manager = *p.Manager
	}
	return cur
}

// Employee is a read-only projection of the staff register.
type Employee struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	LastName        string     `json:"lastName"`
	FirstName       string     `json:"firstName"`
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Division        string     `json:"division"`
	Department      string     `json:"department"`
	CurrentPosition string     `json:"currentPosition"`
	HireDate        *time.Time `json:"hireDate"`
	TerminationDate *time.Time `json:"terminationDate"`
	AgreementType   string     `json:"agreementType"`
	WorkingHours    float64    `json:"workingHours"`
	RemoteDays      int        `json:"remoteDays"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
