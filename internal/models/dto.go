package models

import (
	"bytes"
	"encoding/json"
)

// Lower bounds for the measured dimensions, in millimetres.
const (
	MinDiameter  = 1.0
	MinThickness = 0.1
)

// CreateWeldDTO is the body of POST /api/welds.
// Required fields are pointers so a missing field can be told apart from a zero value.
// The gte bounds mirror MinDiameter and MinThickness.
type CreateWeldDTO struct {
	ObjectName     *string         `json:"objectName,omitempty"`
	Contractor     *string         `json:"contractor,omitempty"`
	Customer       *string         `json:"customer,omitempty"`
	WeldNumber     *string         `json:"weldNumber,omitempty" binding:"required,notblank"`
	Diameter       *float64        `json:"diameter,omitempty" binding:"required,gte=1"`
	Thickness1     *float64        `json:"thickness1,omitempty" binding:"required,gte=0.1"`
	Thickness2     *float64        `json:"thickness2,omitempty" binding:"omitempty,gte=0.1"`
	QualityLevel   *QualityLevel   `json:"qualityLevel,omitempty" binding:"required,oneof=A B C"`
	WeldDate       *string         `json:"weldDate,omitempty" binding:"omitempty,weld_date"`
	WeldingProcess *WeldingProcess `json:"weldingProcess,omitempty" binding:"omitempty,oneof=SMAW_GMAW GTAW SAW"`
	WeldStatus     *WeldStatus     `json:"weldStatus,omitempty" binding:"omitempty,oneof=draft in_progress done"`
	TestMethods    []TestMethod    `json:"testMethods,omitempty" binding:"omitempty,dive,oneof=VT UT RT MT PT"`
	Conclusion     *Conclusion     `json:"conclusion,omitempty" binding:"omitempty,oneof=OK REPAIR CUT"`
	Joint          *JointType      `json:"joint,omitempty" binding:"omitempty,oneof=BUTT FILLET_LAP"`
	Notes          *string         `json:"notes,omitempty"`
}

// UpdateWeldDTO is the body of PATCH /api/welds/:id. Only fields present in the
// JSON are applied; an explicit null clears an optional field.
type UpdateWeldDTO struct {
	ObjectName     Optional[string]         `json:"objectName,omitzero"`
	Contractor     Optional[string]         `json:"contractor,omitzero"`
	Customer       Optional[string]         `json:"customer,omitzero"`
	WeldNumber     Optional[string]         `json:"weldNumber,omitzero"`
	Diameter       Optional[float64]        `json:"diameter,omitzero"`
	Thickness1     Optional[float64]        `json:"thickness1,omitzero"`
	Thickness2     Optional[float64]        `json:"thickness2,omitzero"`
	QualityLevel   Optional[QualityLevel]   `json:"qualityLevel,omitzero"`
	WeldDate       Optional[string]         `json:"weldDate,omitzero"`
	WeldingProcess Optional[WeldingProcess] `json:"weldingProcess,omitzero"`
	WeldStatus     Optional[WeldStatus]     `json:"weldStatus,omitzero"`
	TestMethods    Optional[[]TestMethod]   `json:"testMethods,omitzero"`
	Conclusion     Optional[Conclusion]     `json:"conclusion,omitzero"`
	Joint          Optional[JointType]      `json:"joint,omitzero"`
	Notes          Optional[string]         `json:"notes,omitzero"`
}

// Empty reports whether the patch carries no fields.
func (u UpdateWeldDTO) Empty() bool {
	return u == UpdateWeldDTO{}
}

// Optional is a JSON field that distinguishes absent, null and a value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o Optional[T]) IsZero() bool { return !o.Set }

func (o Optional[T]) IsNull() bool { return o.Set && o.Value == nil }

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
