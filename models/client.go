package models

import (
	"regexp"
	"strings"

	"servicelink/utils"

	"github.com/google/uuid"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Address is a client's saved location. Bookings keep a copy, never a reference.
type Address struct {
	ID           string      `bson:"id" json:"id"`
	Label        string      `bson:"label" json:"label"` // e.g. "Home", "Office"
	AddressLine1 string      `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string      `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string      `bson:"city" json:"city"`
	State        string      `bson:"state" json:"state"`
	Pincode      string      `bson:"pincode" json:"pincode"`
	IsDefault    bool        `bson:"isDefault" json:"isDefault"`
	Coordinates  Coordinates `bson:"coordinates" json:"coordinates"`
}

// Validate checks the required address fields.
func (a Address) Validate() error {
	var missing []string
	if strings.TrimSpace(a.Label) == "" {
		missing = append(missing, "label")
	}
	if strings.TrimSpace(a.AddressLine1) == "" {
		missing = append(missing, "addressLine1")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.State) == "" {
		missing = append(missing, "state")
	}
	if len(missing) > 0 {
		return utils.NewValidationError("invalid address", missing...)
	}
	if !pincodePattern.MatchString(a.Pincode) {
		return utils.NewValidationError("pincode must be 6 digits", "pincode")
	}
	return a.Coordinates.Validate()
}

// ClientProfile is a service seeker. When Addresses is non-empty exactly one is default.
type ClientProfile struct {
	User      `bson:",inline"`
	Addresses []Address `bson:"addresses" json:"addresses"`
}

// Clone deep-copies the profile.
func (p ClientProfile) Clone() ClientProfile {
	p.Addresses = append([]Address(nil), p.Addresses...)
	return p
}

// DefaultAddress returns the default address, if any.
func (p *ClientProfile) DefaultAddress() (Address, bool) {
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// FindAddress looks up an address by id.
func (p *ClientProfile) FindAddress(id string) (Address, bool) {
	for _, a := range p.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// AddAddress appends a validated address. The first address, or one flagged default,
// becomes the sole default.
func (p *ClientProfile) AddAddress(addr Address) (Address, error) {
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	if addr.ID == "" {
		addr.ID = uuid.New().String()
	}
	if _, dup := p.FindAddress(addr.ID); dup {
		return Address{}, utils.NewValidationError("duplicate address id", "id")
	}
	if len(p.Addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		for i := range p.Addresses {
			p.Addresses[i].IsDefault = false
		}
	}
	p.Addresses = append(p.Addresses, addr)
	return addr, nil
}

// RemoveAddress deletes an address; removing the default promotes the first remaining one.
func (p *ClientProfile) RemoveAddress(id string) error {
	idx := -1
	for i, a := range p.Addresses {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return utils.NewNotFoundError("address", id)
	}
	wasDefault := p.Addresses[idx].IsDefault
	p.Addresses = append(p.Addresses[:idx:idx], p.Addresses[idx+1:]...)
	if wasDefault && len(p.Addresses) > 0 {
		p.Addresses[0].IsDefault = true
	}
	return nil
}

// SetDefaultAddress marks id as the only default.
func (p *ClientProfile) SetDefaultAddress(id string) error {
	if _, ok := p.FindAddress(id); !ok {
		return utils.NewNotFoundError("address", id)
	}
	for i := range p.Addresses {
		p.Addresses[i].IsDefault = p.Addresses[i].ID == id
	}
	return nil
}

// NormalizeAddresses validates a full address list and repairs the default flag:
// the first flagged address wins, or the first address when none is flagged.
func NormalizeAddresses(list []Address) ([]Address, error) {
	out := make([]Address, 0, len(list))
	seen := make(map[string]bool, len(list))
	defaultIdx := -1
	for i, a := range list {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if seen[a.ID] {
			return nil, utils.NewValidationError("duplicate address id", "id")
		}
		seen[a.ID] = true
		if a.IsDefault && defaultIdx < 0 {
			defaultIdx = i
		}
		a.IsDefault = false
		out = append(out, a)
	}
	if len(out) == 0 {
		return out, nil
	}
	if defaultIdx < 0 {
		defaultIdx = 0
	}
	out[defaultIdx].IsDefault = true
	return out, nil
}
