package domain

import (
	"maps"
	"slices"
)

// Patient is a patient record.
//
// Optional fields use nil as their absence marker: a nil pointer, slice or map
// means the value was never provided.
type Patient struct {
	ID             int               `json:"id"                        yaml:"id"                        validate:"gte=0"`
	Name           string            `json:"name"                      yaml:"name"                      validate:"required,max=50"`
	Age            int               `json:"age"                       yaml:"age"                       validate:"required,gt=0,lte=150"`
	Email          *string           `json:"email,omitempty"           yaml:"email,omitempty"           validate:"omitempty,email"`
	Social         *string           `json:"social,omitempty"          yaml:"social,omitempty"          validate:"omitempty,url"`
	Weight         *float64          `json:"weight,omitempty"          yaml:"weight,omitempty"          validate:"omitempty,gt=0"`
	Sex            *string           `json:"sex,omitempty"             yaml:"sex,omitempty"             validate:"omitempty,oneof=male female other"`
	Illness        *string           `json:"illness,omitempty"         yaml:"illness,omitempty"         validate:"omitempty,max=200"`
	Married        bool              `json:"married"                   yaml:"married"`
	Allergies      []string          `json:"allergies,omitempty"       yaml:"allergies,omitempty"       validate:"omitempty,max=5,dive,required"`
	ContactDetails map[string]string `json:"contact_details,omitempty" yaml:"contact_details,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`
}

// NewPatient builds a patient from its required fields and validates it.
// An ID of zero leaves assignment to the store.
func NewPatient(id int, name string, age int) (*Patient, error) {
	p := &Patient{ID: id, Name: name, Age: age}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every declared constraint and reports all failing fields.
func (p Patient) Validate() error {
	return validateRecord(p)
}

// Clone returns a deep copy that shares no memory with p.
func (p Patient) Clone() Patient {
	c := p
	c.Email = clonePtr(p.Email)
	c.Social = clonePtr(p.Social)
	c.Weight = clonePtr(p.Weight)
	c.Sex = clonePtr(p.Sex)
	c.Illness = clonePtr(p.Illness)
	c.Allergies = slices.Clone(p.Allergies)
	c.ContactDetails = maps.Clone(p.ContactDetails)
	return c
}

// PatientPatch is a partial update for a Patient. Only fields that were set
// are applied; the ID can never be changed by a patch.
type PatientPatch struct {
	Name           Optional[string]            `json:"name"`
	Age            Optional[int]               `json:"age"`
	Email          Optional[string]            `json:"email"`
	Social         Optional[string]            `json:"social"`
	Weight         Optional[float64]           `json:"weight"`
	Sex            Optional[string]            `json:"sex"`
	Illness        Optional[string]            `json:"illness"`
	Married        Optional[bool]              `json:"married"`
	Allergies      Optional[[]string]          `json:"allergies"`
	ContactDetails Optional[map[string]string] `json:"contact_details"`
}

// Apply returns a copy of current with the set fields of the patch merged in.
// An explicit null clears optional fields and zeroes required ones, which then
// fail validation.
func (pp PatientPatch) Apply(current Patient) Patient {
	next := current.Clone()
	if pp.Name.Set {
		next.Name = pp.Name.Value
	}
	if pp.Age.Set {
		next.Age = pp.Age.Value
	}
	if pp.Email.Set {
		next.Email = pp.Email.Ptr()
	}
	if pp.Social.Set {
		next.Social = pp.Social.Ptr()
	}
	if pp.Weight.Set {
		next.Weight = pp.Weight.Ptr()
	}
	if pp.Sex.Set {
		next.Sex = pp.Sex.Ptr()
	}
	if pp.Illness.Set {
		next.Illness = pp.Illness.Ptr()
	}
	if pp.Married.Set {
		next.Married = pp.Married.Value
	}
	if pp.Allergies.Set {
		next.Allergies = slices.Clone(pp.Allergies.Value)
	}
	if pp.ContactDetails.Set {
		next.ContactDetails = maps.Clone(pp.ContactDetails.Value)
	}
	return next
}
