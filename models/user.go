package models

import (
	"fmt"
	"time"

	"servicelink/utils"
)

// Role selects which profile variant an account carries.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleWorker:
		return Role(s), nil
	}
	return "", utils.NewValidationError(fmt.Sprintf("unknown role %q", s), "role")
}

// User holds the identity shared by both roles. Role never changes after creation.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email,omitempty"`
	Phone        string    `bson:"phone" json:"phone,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	Verified     bool      `bson:"verified" json:"verified"`
}

// Account is the stored form of a user: exactly one of Client or Worker is set.
type Account struct {
	Client *ClientProfile `bson:"client,omitempty" json:"client,omitempty"`
	Worker *WorkerProfile `bson:"worker,omitempty" json:"worker,omitempty"`
}

// NewAccount creates an empty profile of the given role.
func NewAccount(base User) Account {
	switch base.Role {
	case RoleWorker:
		return Account{Worker: &WorkerProfile{
			User:         base,
			Skills:       []Skill{},
			Availability: DefaultAvailability(),
			Reviews:      []Review{},
		}}
	default:
		base.Role = RoleClient
		return Account{Client: &ClientProfile{User: base, Addresses: []Address{}}}
	}
}

// Base returns the shared identity of whichever variant is set.
func (a Account) Base() User {
	switch {
	case a.Client != nil:
		return a.Client.User
	case a.Worker != nil:
		return a.Worker.User
	}
	return User{}
}

// ID is shorthand for Base().ID.
func (a Account) ID() string { return a.Base().ID }

// Role reports the variant's role.
func (a Account) Role() Role {
	switch {
	case a.Client != nil:
		return RoleClient
	case a.Worker != nil:
		return RoleWorker
	}
	return ""
}

// ProfileComplete is derived: clients need an address, workers need a skill.
func (a Account) ProfileComplete() bool {
	switch {
	case a.Client != nil:
		return len(a.Client.Addresses) > 0
	case a.Worker != nil:
		return len(a.Worker.Skills) > 0
	}
	return false
}

// Validate enforces the single-variant rule.
func (a Account) Validate() error {
	if (a.Client == nil) == (a.Worker == nil) {
		return utils.NewValidationError("account must carry exactly one profile variant")
	}
	if a.Client != nil && a.Client.Role != RoleClient {
		return utils.NewValidationError("client profile with non-client role", "role")
	}
	if a.Worker != nil && a.Worker.Role != RoleWorker {
		return utils.NewValidationError("worker profile with non-worker role", "role")
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (a Account) Clone() Account {
	var out Account
	if a.Client != nil {
		c := a.Client.Clone()
		out.Client = &c
	}
	if a.Worker != nil {
		w := a.Worker.Clone()
		out.Worker = &w
	}
	return out
}
