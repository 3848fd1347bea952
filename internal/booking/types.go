// Package booking holds the booking draft, the wizard step state machine and the
// guards that decide when a step is complete.
package booking

// Address is a resolved service location.
type Address struct {
	ZipCode   string `json:"zip_code"`
	City      string `json:"city"`
	State     string `json:"state"`
	Formatted string `json:"formatted"`
}

// Service is an entry in the static service catalog.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`    // Minutes
	PriceRange  string `json:"price_range"` // "$low-high"
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// Provider is an entry in the static provider catalog.
type Provider struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	ImageURL    string   `json:"image_url"`
	Rating      float64  `json:"rating"`
	Specialties []string `json:"specialties"`
}

// TimeSlot is a 30-minute window on a date.
type TimeSlot struct {
	Time       string `json:"time"` // "HH:MM"
	Available  bool   `json:"available"`
	ProviderID string `json:"provider_id,omitempty"`
}

// GuestInfo is the contact information collected on the details step.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Draft is the in-progress booking accumulated across wizard steps.
// Nil pointers and empty strings mean "not chosen yet".
type Draft struct {
	Address   *Address   `json:"address,omitempty"`
	Service   *Service   `json:"service,omitempty"`
	Date      string     `json:"date,omitempty"` // "YYYY-MM-DD"
	Time      string     `json:"time,omitempty"` // "HH:MM"
	Provider  *Provider  `json:"provider,omitempty"`
	GuestInfo *GuestInfo `json:"guest_info,omitempty"`
}

// Clone returns a deep copy so callers can't reach back into controller state.
func (d Draft) Clone() Draft {
	out := Draft{Date: d.Date, Time: d.Time}
	if d.Address != nil {
		a := *d.Address
		out.Address = &a
	}
	if d.Service != nil {
		s := *d.Service
		out.Service = &s
	}
	if d.Provider != nil {
		p := *d.Provider
		p.Specialties = append([]string(nil), d.Provider.Specialties...)
		out.Provider = &p
	}
	if d.GuestInfo != nil {
		g := *d.GuestInfo
		out.GuestInfo = &g
	}
	return out
}

// IsEmpty reports whether nothing has been selected yet.
func (d Draft) IsEmpty() bool {
	return d.Address == nil && d.Service == nil && d.Date == "" && d.Time == "" &&
		d.Provider == nil && d.GuestInfo == nil
}

// Catalog is the read-only source of services, providers, service areas and
// availability.
type Catalog interface {
	ResolveAddress(zip string) (Address, bool)
	Services() []Service
	Service(id string) (Service, bool)
	Providers() []Provider
	Slots(date string) []TimeSlot
}

// Rand is the randomness used for provider assignment and slot availability.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}
