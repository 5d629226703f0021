package models

import (
	"math"
	"strings"

	"servicelink/utils"
)

// Skill is a trade a worker offers, e.g. "Electrician".
type Skill struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// AreaType tags the ServiceArea variant.
type AreaType string

const (
	AreaRadius  AreaType = "radius"
	AreaPincode AreaType = "pincode"
)

// ServiceArea is either a radius around a center or a set of pincodes.
type ServiceArea struct {
	Type     AreaType     `bson:"type" json:"type"`
	Center   *Coordinates `bson:"center,omitempty" json:"center,omitempty"`
	RadiusKm float64      `bson:"radiusKm,omitempty" json:"radiusKm,omitempty"`
	Pincodes []string     `bson:"pincodes,omitempty" json:"pincodes,omitempty"`
}

// Validate checks that the fields of the tagged variant are present.
func (a ServiceArea) Validate() error {
	switch a.Type {
	case AreaRadius:
		if a.Center == nil {
			return utils.NewValidationError("radius service area needs a center", "serviceArea.center")
		}
		if a.RadiusKm <= 0 {
			return utils.NewValidationError("radius must be positive", "serviceArea.radiusKm")
		}
		return a.Center.Validate()
	case AreaPincode:
		if len(a.Pincodes) == 0 {
			return utils.NewValidationError("pincode service area needs pincodes", "serviceArea.pincodes")
		}
		for _, p := range a.Pincodes {
			if !pincodePattern.MatchString(p) {
				return utils.NewValidationError("pincode must be 6 digits", "serviceArea.pincodes")
			}
		}
		return nil
	}
	return utils.NewValidationError("service area type must be radius or pincode", "serviceArea.type")
}

// Clone deep-copies the area.
func (a ServiceArea) Clone() ServiceArea {
	if a.Center != nil {
		c := *a.Center
		a.Center = &c
	}
	a.Pincodes = append([]string(nil), a.Pincodes...)
	return a
}

// Covers reports whether an address lies inside the area.
func (a ServiceArea) Covers(addr Address) bool {
	switch a.Type {
	case AreaRadius:
		if a.Center == nil {
			return false
		}
		return a.Center.DistanceKm(addr.Coordinates) <= a.RadiusKm
	case AreaPincode:
		for _, p := range a.Pincodes {
			if p == addr.Pincode {
				return true
			}
		}
	}
	return false
}

// WorkerProfile is a service provider listed in the directory.
type WorkerProfile struct {
	User           `bson:",inline"`
	Skills         []Skill      `bson:"skills" json:"skills"`
	Experience     int          `bson:"experience" json:"experience"` // years
	Availability   Availability `bson:"availability" json:"availability"`
	ServiceArea    ServiceArea  `bson:"serviceArea" json:"serviceArea"`
	GovernmentID   string       `bson:"governmentId,omitempty" json:"governmentId,omitempty"`
	VerifiedWorker bool         `bson:"verifiedWorker" json:"verifiedWorker"` // set by the verification authority only
	Rating         float64      `bson:"rating" json:"rating"`
	Reviews        []Review     `bson:"reviews" json:"reviews"`
}

// Clone deep-copies the profile.
func (w WorkerProfile) Clone() WorkerProfile {
	w.Skills = append([]Skill(nil), w.Skills...)
	w.Reviews = append([]Review(nil), w.Reviews...)
	w.Availability = w.Availability.Clone()
	w.ServiceArea = w.ServiceArea.Clone()
	return w
}

// HasSkill matches a skill name exactly.
func (w WorkerProfile) HasSkill(name string) bool {
	for _, s := range w.Skills {
		if s.Name == name {
			return true
		}
	}
	return false
}

// MatchesQuery is a case-insensitive substring match on name or any skill name.
func (w WorkerProfile) MatchesQuery(q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(w.Name), q) {
		return true
	}
	for _, s := range w.Skills {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}

// AddReview appends a review and recomputes the derived rating.
func (w *WorkerProfile) AddReview(r Review) {
	w.Reviews = append(w.Reviews, r)
	w.Rating = AverageRating(w.Reviews)
}

// AverageRating is the mean review rating rounded to one decimal, 0 without reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
