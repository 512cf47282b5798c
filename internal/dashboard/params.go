package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
)

// Editable weld fields, in form order.
const (
	FieldWeldNumber     = "weldNumber"
	FieldDiameter       = "diameter"
	FieldThickness1     = "thickness1"
	FieldThickness2     = "thickness2"
	FieldQualityLevel   = "qualityLevel"
	FieldWeldDate       = "weldDate"
	FieldWeldingProcess = "weldingProcess"
	FieldJoint          = "joint"
	FieldNotes          = "notes"
)

var (
	ErrUnknownField = errors.New("field is not editable")
	ErrRequired     = errors.New("value is required")
	ErrBadValue     = registry.ErrBadValue
)

// editableField describes how one form field is compared and patched.
// value must return a comparable; empty values normalise to "" or nil.
type editableField struct {
	name  string
	value func(w *models.Weld) any
	patch func(w *models.Weld, p *models.UpdateWeldDTO)
}

var editable = []editableField{
	{
		name:  FieldWeldNumber,
		value: func(w *models.Weld) any { return w.WeldNumber },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.WeldNumber = models.Some(w.WeldNumber) },
	},
	{
		name:  FieldDiameter,
		value: func(w *models.Weld) any { return w.Diameter },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.Diameter = models.Some(w.Diameter) },
	},
	{
		name:  FieldThickness1,
		value: func(w *models.Weld) any { return w.Thickness1 },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.Thickness1 = models.Some(w.Thickness1) },
	},
	{
		name: FieldThickness2,
		value: func(w *models.Weld) any {
			if w.Thickness2 == nil {
				return nil
			}
			return *w.Thickness2
		},
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) {
			if w.Thickness2 == nil {
				p.Thickness2 = models.Null[float64]()
				return
			}
			p.Thickness2 = models.Some(*w.Thickness2)
		},
	},
	{
		name:  FieldQualityLevel,
		value: func(w *models.Weld) any { return w.QualityLevel },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.QualityLevel = models.Some(w.QualityLevel) },
	},
	{
		name:  FieldWeldDate,
		value: func(w *models.Weld) any { return models.StringOrEmpty(w.WeldDate) },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.WeldDate = nullableString(w.WeldDate) },
	},
	{
		name:  FieldWeldingProcess,
		value: func(w *models.Weld) any { return w.WeldingProcess },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.WeldingProcess = models.Some(w.WeldingProcess) },
	},
	{
		name:  FieldJoint,
		value: func(w *models.Weld) any { return w.Joint },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.Joint = models.Some(w.Joint) },
	},
	{
		name:  FieldNotes,
		value: func(w *models.Weld) any { return models.StringOrEmpty(w.Notes) },
		patch: func(w *models.Weld, p *models.UpdateWeldDTO) { p.Notes = nullableString(w.Notes) },
	},
}

// EditableFields lists the field names the params form shows.
func EditableFields() []string {
	out := make([]string, 0, len(editable))
	for _, f := range editable {
		out = append(out, f.name)
	}
	return out
}

func nullableString(s *string) models.Optional[string] {
	if s == nil || *s == "" {
		return models.Null[string]()
	}
	return models.Some(*s)
}

// ParamsEditor edits a copy of one weld and saves only what changed.
type ParamsEditor struct {
	mu       sync.Mutex
	api      API
	log      *zap.Logger
	onSaved  func(models.Weld)
	original models.Weld
	current  models.Weld
	changed  map[string]bool
	saving   bool
	notes    []registry.Notification
}

func NewParamsEditor(api API, w models.Weld, log *zap.Logger) *ParamsEditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ParamsEditor{
		api:      api,
		log:      log,
		original: w.Clone(),
		current:  w.Clone(),
		changed:  map[string]bool{},
	}
}

// Weld returns the form values.
func (e *ParamsEditor) Weld() models.Weld {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Clone()
}

// Edit applies fn to the form values and recomputes the changed set.
func (e *ParamsEditor) Edit(fn func(*models.Weld)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.current)
	e.current.ID = e.original.ID
	e.recompute()
}

func (e *ParamsEditor) recompute() {
	e.changed = map[string]bool{}
	for _, f := range editable {
		if f.value(&e.current) != f.value(&e.original) {
			e.changed[f.name] = true
		}
	}
}

// SetText parses text into field. Empty text clears optional fields.
func (e *ParamsEditor) SetText(field, text string) error {
	text = strings.TrimSpace(text)
	var apply func(*models.Weld)

	switch field {
	case FieldWeldNumber:
		if text == "" {
			return fmt.Errorf("%s: %w", field, ErrRequired)
		}
		apply = func(w *models.Weld) { w.WeldNumber = text }
	case FieldDiameter, FieldThickness1:
		if text == "" {
			return fmt.Errorf("%s: %w", field, ErrRequired)
		}
		v, err := registry.ParseNumber(text)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if field == FieldDiameter {
			apply = func(w *models.Weld) { w.Diameter = v }
		} else {
			apply = func(w *models.Weld) { w.Thickness1 = v }
		}
	case FieldThickness2:
		if text == "" {
			apply = func(w *models.Weld) { w.Thickness2 = nil }
			break
		}
		v, err := registry.ParseNumber(text)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		apply = func(w *models.Weld) { w.Thickness2 = &v }
	case FieldQualityLevel:
		q := models.QualityLevel(strings.ToUpper(text))
		if !q.Valid() {
			return fmt.Errorf("%s: %w", field, ErrBadValue)
		}
		apply = func(w *models.Weld) { w.QualityLevel = q }
	case FieldWeldDate:
		if text == "" {
			apply = func(w *models.Weld) { w.WeldDate = nil }
			break
		}
		date, err := registry.ParseDate(text)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		apply = func(w *models.Weld) { w.WeldDate = &date }
	case FieldWeldingProcess:
		p := models.WeldingProcess(strings.ToUpper(text))
		if !p.Valid() {
			return fmt.Errorf("%s: %w", field, ErrBadValue)
		}
		apply = func(w *models.Weld) { w.WeldingProcess = p }
	case FieldJoint:
		j := models.JointType(strings.ToUpper(text))
		if !j.Valid() {
			return fmt.Errorf("%s: %w", field, ErrBadValue)
		}
		apply = func(w *models.Weld) { w.Joint = j }
	case FieldNotes:
		apply = func(w *models.Weld) {
			if text == "" {
				w.Notes = nil
				return
			}
			w.Notes = &text
		}
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}

	e.Edit(apply)
	return nil
}

// Text returns the raw form value of field.
func (e *ParamsEditor) Text(field string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := &e.current
	switch field {
	case FieldWeldNumber:
		return w.WeldNumber
	case FieldDiameter:
		return strconv.FormatFloat(w.Diameter, 'f', -1, 64)
	case FieldThickness1:
		return strconv.FormatFloat(w.Thickness1, 'f', -1, 64)
	case FieldThickness2:
		if w.Thickness2 == nil {
			return ""
		}
		return strconv.FormatFloat(*w.Thickness2, 'f', -1, 64)
	case FieldQualityLevel:
		return string(w.QualityLevel)
	case FieldWeldDate:
		return models.StringOrEmpty(w.WeldDate)
	case FieldWeldingProcess:
		return string(w.WeldingProcess)
	case FieldJoint:
		return string(w.Joint)
	case FieldNotes:
		return models.StringOrEmpty(w.Notes)
	}
	return ""
}

// IsChanged reports whether field differs from the last saved value.
func (e *ParamsEditor) IsChanged(field string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.changed[field]
}

// Changed returns the changed fields in form order.
func (e *ParamsEditor) Changed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, f := range editable {
		if e.changed[f.name] {
			out = append(out, f.name)
		}
	}
	return out
}

func (e *ParamsEditor) HasUnsavedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.changed) > 0
}

func (e *ParamsEditor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Reset restores the last saved values.
func (e *ParamsEditor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = e.original.Clone()
	e.changed = map[string]bool{}
}

// Patch builds the update body from the changed fields.
func (e *ParamsEditor) Patch() models.UpdateWeldDTO {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.patchLocked()
}

func (e *ParamsEditor) patchLocked() models.UpdateWeldDTO {
	var p models.UpdateWeldDTO
	for _, f := range editable {
		if e.changed[f.name] {
			f.patch(&e.current, &p)
		}
	}
	return p
}

// Save sends the changed fields and adopts the server's copy of the weld.
// Nothing is sent when there are no changes or a save is in flight.
func (e *ParamsEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.saving || len(e.changed) == 0 {
		e.mu.Unlock()
		return nil
	}
	id := e.original.ID
	label := e.current.WeldNumber
	if label == "" {
		label = id
	}
	patch := e.patchLocked()
	e.saving = true
	e.mu.Unlock()

	updated, err := e.api.Update(ctx, id, patch)

	e.mu.Lock()
	e.saving = false
	if err != nil {
		e.log.Warn("dashboard: update failed", zap.String("id", id), zap.Error(err))
		detail := fmt.Sprintf("Ошибка обновления стыка %q", label)
		if msg := errorMessage(err); msg != "" {
			detail += ": " + msg
		}
		e.notify(registry.SeverityError, "Ошибка", detail)
		e.mu.Unlock()
		return err
	}
	e.original = updated.Clone()
	e.current = updated.Clone()
	e.changed = map[string]bool{}
	e.notify(registry.SeveritySuccess, "Успешно", fmt.Sprintf("Стык %q обновлён", label))
	onSaved := e.onSaved
	e.mu.Unlock()

	if onSaved != nil {
		onSaved(updated.Clone())
	}
	return nil
}

func (e *ParamsEditor) notify(sev registry.Severity, summary, detail string) {
	e.notes = append(e.notes, registry.Notification{Severity: sev, Summary: summary, Detail: detail})
}

// Notifications drains the pending toasts.
func (e *ParamsEditor) Notifications() []registry.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.notes
	e.notes = nil
	return out
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return strings.Join(apiErr.Details(), ", ")
	}
	return err.Error()
}
