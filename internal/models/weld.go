package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Weld is one inspected joint in the registry.
// ObjectName, Contractor and Customer describe the construction object the joint belongs to.
type Weld struct {
	ID             string                          `gorm:"type:uuid;primaryKey" json:"id"`
	ObjectName     *string                         `gorm:"index" json:"objectName,omitempty"`
	Contractor     *string                         `json:"contractor,omitempty"`
	Customer       *string                         `json:"customer,omitempty"`
	WeldNumber     string                          `gorm:"not null;index" json:"weldNumber"`
	Diameter       float64                         `gorm:"not null" json:"diameter"`
	Thickness1     float64                         `gorm:"not null" json:"thickness1"`
	Thickness2     *float64                        `json:"thickness2,omitempty"`
	QualityLevel   QualityLevel                    `gorm:"size:1;not null" json:"qualityLevel"`
	WeldDate       *string                         `gorm:"size:32" json:"weldDate,omitempty"`
	WeldingProcess WeldingProcess                  `gorm:"size:16;not null" json:"weldingProcess"`
	WeldStatus     *WeldStatus                     `gorm:"size:16" json:"weldStatus,omitempty"`
	TestMethods    datatypes.JSONSlice[TestMethod] `gorm:"type:jsonb" json:"testMethods"`
	Conclusion     *Conclusion                     `gorm:"size:8" json:"conclusion,omitempty"`
	Joint          JointType                       `gorm:"size:16;not null" json:"joint"`
	Notes          *string                         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time                       `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time                       `json:"updatedAt"`
}

func (w *Weld) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Clone returns a copy that shares no pointers with w.
func (w Weld) Clone() Weld {
	out := w
	out.ObjectName = cloneString(w.ObjectName)
	out.Contractor = cloneString(w.Contractor)
	out.Customer = cloneString(w.Customer)
	out.WeldDate = cloneString(w.WeldDate)
	out.Notes = cloneString(w.Notes)
	if w.Thickness2 != nil {
		v := *w.Thickness2
		out.Thickness2 = &v
	}
	if w.WeldStatus != nil {
		v := *w.WeldStatus
		out.WeldStatus = &v
	}
	if w.Conclusion != nil {
		v := *w.Conclusion
		out.Conclusion = &v
	}
	out.TestMethods = make(datatypes.JSONSlice[TestMethod], len(w.TestMethods))
	copy(out.TestMethods, w.TestMethods)
	return out
}

// Methods returns the test methods as a plain slice.
func (w Weld) Methods() []TestMethod {
	return []TestMethod(w.TestMethods)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringOrEmpty dereferences s, returning "" for nil.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
