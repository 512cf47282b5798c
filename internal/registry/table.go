package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// API is the part of the weld client the table needs.
type API interface {
	List(ctx context.Context, q client.ListQuery) ([]models.Weld, error)
	Create(ctx context.Context, in models.CreateWeldDTO) (*models.Weld, error)
	Delete(ctx context.Context, id string) error
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

type Notification struct {
	Severity Severity
	Summary  string
	Detail   string
}

// ConstructionObject groups welds; its fields are copied onto every new weld.
type ConstructionObject struct {
	ObjectName string
	Contractor string
	Customer   string
}

// Draft is the inline add-row form.
type Draft struct {
	WeldNumber     string
	Diameter       *float64
	Thickness1     *float64
	Thickness2     *float64
	QualityLevel   models.QualityLevel
	WeldDate       string
	WeldingProcess models.WeldingProcess
	Joint          models.JointType
	TestMethods    []models.TestMethod
	Conclusion     *models.Conclusion
	WeldStatus     models.WeldStatus
	Notes          string
}

func NewDraft() Draft {
	return Draft{
		QualityLevel:   models.QualityB,
		WeldingProcess: models.ProcessSMAWGMAW,
		Joint:          models.JointButt,
		TestMethods:    []models.TestMethod{},
		WeldStatus:     models.StatusDraft,
	}
}

// Valid reports whether the required draft fields pass the client-side rules.
func (d Draft) Valid() bool {
	return strings.TrimSpace(d.WeldNumber) != "" &&
		d.Diameter != nil && *d.Diameter >= models.MinDiameter &&
		d.Thickness1 != nil && *d.Thickness1 >= models.MinThickness &&
		d.QualityLevel != ""
}

// dto builds the create payload, sending optional fields only when filled.
func (d Draft) dto(obj ConstructionObject) models.CreateWeldDTO {
	weldNumber, quality := d.WeldNumber, d.QualityLevel
	in := models.CreateWeldDTO{
		ObjectName:   &obj.ObjectName,
		Contractor:   &obj.Contractor,
		Customer:     &obj.Customer,
		WeldNumber:   &weldNumber,
		Diameter:     d.Diameter,
		Thickness1:   d.Thickness1,
		Thickness2:   d.Thickness2,
		QualityLevel: &quality,
		Conclusion:   d.Conclusion,
	}
	if d.WeldDate != "" {
		date := d.WeldDate
		in.WeldDate = &date
	}
	if d.WeldingProcess != "" {
		p := d.WeldingProcess
		in.WeldingProcess = &p
	}
	if d.Joint != "" {
		j := d.Joint
		in.Joint = &j
	}
	if len(d.TestMethods) > 0 {
		in.TestMethods = append([]models.TestMethod(nil), d.TestMethods...)
	}
	if d.WeldStatus != "" {
		s := d.WeldStatus
		in.WeldStatus = &s
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		in.Notes = &notes
	}
	return in
}

// Row is either the draft row or a stored weld.
type Row struct {
	Draft bool
	Weld  models.Weld
}

// Table is the registry page state. Methods are safe for concurrent use;
// API calls run without holding the lock.
type Table struct {
	mu  sync.Mutex
	api API
	log *zap.Logger

	welds         []models.Weld
	loading       bool
	saving        bool
	adding        bool
	draft         Draft
	objects       []ConstructionObject
	selected      *ConstructionObject
	hidden        map[string]bool
	pendingDelete *models.Weld
	deletingID    string
	notifications []Notification
}

func NewTable(api API, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	hidden := make(map[string]bool, len(HiddenByDefault))
	for _, f := range HiddenByDefault {
		hidden[f] = true
	}
	return &Table{api: api, log: log, draft: NewDraft(), hidden: hidden}
}

func (t *Table) notify(sev Severity, summary, detail string) {
	t.notifications = append(t.notifications, Notification{Severity: sev, Summary: summary, Detail: detail})
}

// Load fetches the welds of the selected object. The first load with any
// results also collects the known construction objects.
func (t *Table) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loading = true
	q := client.ListQuery{}
	if t.selected != nil {
		q.ObjectName = t.selected.ObjectName
	}
	t.mu.Unlock()

	welds, err := t.api.List(ctx, q)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.log.Warn("registry: load failed", zap.Error(err))
		t.notify(SeverityError, "Ошибка", "Не удалось загрузить данные")
		return err
	}
	t.welds = welds
	if len(t.objects) == 0 {
		t.objects = uniqueObjects(welds)
	}
	return nil
}

func uniqueObjects(welds []models.Weld) []ConstructionObject {
	index := map[string]int{}
	var out []ConstructionObject
	for _, w := range welds {
		name := models.StringOrEmpty(w.ObjectName)
		if name == "" {
			continue
		}
		obj := ConstructionObject{
			ObjectName: name,
			Contractor: models.StringOrEmpty(w.Contractor),
			Customer:   models.StringOrEmpty(w.Customer),
		}
		if i, ok := index[name]; ok {
			out[i] = obj
			continue
		}
		index[name] = len(out)
		out = append(out, obj)
	}
	return out
}

func (t *Table) Welds() []models.Weld {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Weld(nil), t.welds...)
}

// Rows returns the table body, led by the draft row while adding.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]Row, 0, len(t.welds)+1)
	if t.adding {
		rows = append(rows, Row{Draft: true})
	}
	for _, w := range t.welds {
		rows = append(rows, Row{Weld: w})
	}
	return rows
}

func (t *Table) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Table) Saving() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saving
}

func (t *Table) Adding() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.adding
}

func (t *Table) DeletingID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deletingID
}

func (t *Table) StartAdding() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adding = true
	t.draft = NewDraft()
}

func (t *Table) CancelAdding() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelAddingLocked()
}

func (t *Table) cancelAddingLocked() {
	t.adding = false
	t.draft = NewDraft()
}

func (t *Table) Draft() Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// EditDraft applies fn to the draft form.
func (t *Table) EditDraft(fn func(*Draft)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.draft)
}

// Save submits the draft. Nothing is sent when the draft is invalid, no
// object is selected or a save is already in flight.
func (t *Table) Save(ctx context.Context) error {
	t.mu.Lock()
	if t.saving {
		t.mu.Unlock()
		return nil
	}
	if !t.draft.Valid() {
		t.notify(SeverityWarn, "Внимание", "Заполните обязательные поля: Номер стыка, D, S1")
		t.mu.Unlock()
		return ErrInvalidDraft
	}
	if t.selected == nil {
		t.notify(SeverityWarn, "Внимание", "Сначала выберите или создайте объект строительства")
		t.mu.Unlock()
		return ErrNoObject
	}
	in := t.draft.dto(*t.selected)
	t.saving = true
	t.mu.Unlock()

	created, err := t.api.Create(ctx, in)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.saving = false
	if err != nil {
		t.log.Warn("registry: create failed", zap.Error(err))
		t.notify(SeverityError, "Ошибка", errorDetail(err, "Не удалось сохранить данные"))
		return err
	}
	t.welds = append([]models.Weld{*created}, t.welds...)
	t.cancelAddingLocked()
	t.notify(SeveritySuccess, "Успешно", fmt.Sprintf("Стык %q добавлен", created.WeldNumber))
	return nil
}

var (
	ErrInvalidDraft  = errors.New("draft is missing required fields")
	ErrNoObject      = errors.New("no construction object selected")
	ErrInvalidObject = errors.New("construction object is missing required fields")
	ErrNoPending     = errors.New("no delete is pending")
)

func errorDetail(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return strings.Join(apiErr.Details(), ", ")
	}
	return fallback
}

func (t *Table) Objects() []ConstructionObject {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ConstructionObject(nil), t.objects...)
}

func (t *Table) SelectedObject() *ConstructionObject {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return nil
	}
	obj := *t.selected
	return &obj
}

// SelectObject switches the object filter (nil for all) and reloads.
func (t *Table) SelectObject(ctx context.Context, obj *ConstructionObject) error {
	t.mu.Lock()
	if obj == nil {
		t.selected = nil
	} else {
		o := *obj
		t.selected = &o
	}
	t.cancelAddingLocked()
	t.mu.Unlock()
	return t.Load(ctx)
}

// AddObject registers a new construction object locally, selects it and reloads.
func (t *Table) AddObject(ctx context.Context, obj ConstructionObject) error {
	obj.ObjectName = strings.TrimSpace(obj.ObjectName)
	obj.Contractor = strings.TrimSpace(obj.Contractor)
	obj.Customer = strings.TrimSpace(obj.Customer)

	t.mu.Lock()
	if obj.ObjectName == "" || obj.Contractor == "" || obj.Customer == "" {
		t.notify(SeverityWarn, "Внимание", "Заполните все обязательные поля")
		t.mu.Unlock()
		return ErrInvalidObject
	}
	t.objects = append([]ConstructionObject{obj}, t.objects...)
	t.selected = &obj
	t.notify(SeveritySuccess, "Успешно", fmt.Sprintf("Объект %q добавлен", obj.ObjectName))
	t.mu.Unlock()
	return t.Load(ctx)
}

// IsColumnVisible reports whether field is currently shown.
func (t *Table) IsColumnVisible(field string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.hidden[field]
}

func (t *Table) ToggleColumn(field string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hidden[field] = !t.hidden[field]
}

// VisibleColumns returns the shown columns in display order.
func (t *Table) VisibleColumns() []Column {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if !t.hidden[c.Field] {
			out = append(out, c)
		}
	}
	return out
}

// RequestDelete asks for confirmation before deleting id.
func (t *Table) RequestDelete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.welds {
		if t.welds[i].ID == id {
			w := t.welds[i]
			t.pendingDelete = &w
			return nil
		}
	}
	t.notify(SeverityError, "Ошибка", "Не удалось определить ID стыка")
	return fmt.Errorf("weld %q is not in the table", id)
}

func (t *Table) PendingDelete() *models.Weld {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pendingDelete == nil {
		return nil
	}
	w := *t.pendingDelete
	return &w
}

func (t *Table) CancelDelete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = nil
}

// ConfirmDelete deletes the pending weld. The row is removed only after the API succeeds.
func (t *Table) ConfirmDelete(ctx context.Context) error {
	t.mu.Lock()
	if t.pendingDelete == nil {
		t.mu.Unlock()
		return ErrNoPending
	}
	target := *t.pendingDelete
	t.pendingDelete = nil
	t.deletingID = target.ID
	t.mu.Unlock()

	err := t.api.Delete(ctx, target.ID)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.deletingID = ""
	if err != nil {
		t.log.Warn("registry: delete failed", zap.String("id", target.ID), zap.Error(err))
		t.notify(SeverityError, "Ошибка", errorDetail(err, "Не удалось удалить стык"))
		return err
	}
	kept := t.welds[:0:0]
	for _, w := range t.welds {
		if w.ID != target.ID {
			kept = append(kept, w)
		}
	}
	t.welds = kept
	t.notify(SeveritySuccess, "Успешно", fmt.Sprintf("Стык %q удалён", target.WeldNumber))
	return nil
}

// Open returns the weld id behind a row; the draft row opens nothing.
func (t *Table) Open(r Row) (string, bool) {
	if r.Draft || r.Weld.ID == "" {
		return "", false
	}
	return r.Weld.ID, true
}

// Notifications returns and clears the pending notifications.
func (t *Table) Notifications() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.notifications
	t.notifications = nil
	return out
}
