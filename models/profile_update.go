package models

import (
	"strings"

	"servicelink/utils"

	"github.com/google/uuid"
)

// ClientUpdate carries the fields a client may set while completing a profile.
type ClientUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Email        *string   `json:"email,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"`
}

// WorkerUpdate carries the fields a worker may set. It has no verifiedWorker field.
type WorkerUpdate struct {
	Name         *string       `json:"name,omitempty"`
	Email        *string       `json:"email,omitempty"`
	ProfileImage *string       `json:"profileImage,omitempty"`
	Skills       []Skill       `json:"skills,omitempty"`
	Experience   *int          `json:"experience,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
	ServiceArea  *ServiceArea  `json:"serviceArea,omitempty"`
	GovernmentID *string       `json:"governmentId,omitempty"`
}

// ProfileUpdate holds exactly one variant matching the account role.
type ProfileUpdate struct {
	Client *ClientUpdate `json:"client,omitempty"`
	Worker *WorkerUpdate `json:"worker,omitempty"`
}

func applyIdentity(u *User, name, email, image *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return utils.NewValidationError("name cannot be blank", "name")
		}
		u.Name = n
	}
	if email != nil {
		e := strings.TrimSpace(*email)
		if e != "" && !ValidEmail(e) {
			return utils.NewValidationError("invalid email", "email")
		}
		u.Email = e
	}
	if image != nil {
		u.ProfileImage = strings.TrimSpace(*image)
	}
	return nil
}

// Apply merges the update into a copy of the client profile.
func (u ClientUpdate) Apply(p ClientProfile) (ClientProfile, error) {
	out := p.Clone()
	if err := applyIdentity(&out.User, u.Name, u.Email, u.ProfileImage); err != nil {
		return ClientProfile{}, err
	}
	if u.Addresses != nil {
		addrs, err := NormalizeAddresses(u.Addresses)
		if err != nil {
			return ClientProfile{}, err
		}
		out.Addresses = addrs
	}
	return out, nil
}

// Apply merges the update into a copy of the worker profile.
func (u WorkerUpdate) Apply(p WorkerProfile) (WorkerProfile, error) {
	out := p.Clone()
	if err := applyIdentity(&out.User, u.Name, u.Email, u.ProfileImage); err != nil {
		return WorkerProfile{}, err
	}
	if u.Skills != nil {
		skills, err := normalizeSkills(u.Skills)
		if err != nil {
			return WorkerProfile{}, err
		}
		out.Skills = skills
	}
	if u.Experience != nil {
		if *u.Experience < 0 {
			return WorkerProfile{}, utils.NewValidationError("experience cannot be negative", "experience")
		}
		out.Experience = *u.Experience
	}
	if u.Availability != nil {
		if err := u.Availability.Validate(); err != nil {
			return WorkerProfile{}, err
		}
		out.Availability = u.Availability.Clone()
	}
	if u.ServiceArea != nil {
		if err := u.ServiceArea.Validate(); err != nil {
			return WorkerProfile{}, err
		}
		out.ServiceArea = u.ServiceArea.Clone()
	}
	if u.GovernmentID != nil {
		out.GovernmentID = strings.TrimSpace(*u.GovernmentID)
	}
	return out, nil
}

func normalizeSkills(in []Skill) ([]Skill, error) {
	out := make([]Skill, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, utils.NewValidationError("skill name cannot be blank", "skills")
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		out = append(out, s)
	}
	return out, nil
}

// ValidEmail is a light shape check: something@domain.tld.
func ValidEmail(e string) bool {
	at := strings.LastIndex(e, "@")
	if at <= 0 || at == len(e)-1 {
		return false
	}
	dot := strings.LastIndex(e[at:], ".")
	return dot > 1 && at+dot < len(e)-1
}
