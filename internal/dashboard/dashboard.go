package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// API is the part of the weld client the dashboard needs.
type API interface {
	Get(ctx context.Context, id string) (*models.Weld, error)
	Update(ctx context.Context, id string, in models.UpdateWeldDTO) (*models.Weld, error)
}

type NormDocument struct {
	Name  string
	Value string
}

// NormDocuments are the rejection norm documents; the first is the default.
var NormDocuments = []NormDocument{
	{Name: "СТО Газпром 15-1.3-004-2023", Value: "sto-15-1.3-004-2023"},
	{Name: "Р Газпром 2-2.2-606-2011", Value: "r-2-2.2-606-2011"},
	{Name: "СТО Газпром 2-2.4-083-2006", Value: "sto-2-2.4-083-2006"},
}

var ErrUnknownNorm = errors.New("unknown norm document")

const (
	reportSuffix = "-report"
	normsSuffix  = "-norms"
)

// WidgetKey names the detail widget of method in a panel, e.g. "ut-report".
func WidgetKey(method models.TestMethod, suffix string) string {
	return strings.ToLower(string(method)) + suffix
}

func ReportWidget(method models.TestMethod) string { return WidgetKey(method, reportSuffix) }

func NormsWidget(method models.TestMethod) string { return WidgetKey(method, normsSuffix) }

// Dashboard is the single-weld page: params form, reports panel and norms
// panel. At most one detail widget is open across both panels.
type Dashboard struct {
	mu  sync.Mutex
	api API
	log *zap.Logger

	weldID       string
	weld         *models.Weld
	loading      bool
	loadErr      string
	editor       *ParamsEditor
	reportMethod models.TestMethod
	normsMethod  models.TestMethod
	active       string
	norm         string
}

func New(api API, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{api: api, log: log, norm: NormDocuments[0].Value}
}

// Load fetches the weld and rebuilds the params editor.
func (d *Dashboard) Load(ctx context.Context, id string) error {
	d.mu.Lock()
	d.weldID = id
	d.loading = true
	d.loadErr = ""
	d.mu.Unlock()

	w, err := d.api.Get(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.log.Warn("dashboard: load failed", zap.String("id", id), zap.Error(err))
		d.loadErr = "Не удалось загрузить данные стыка"
		return err
	}
	d.weld = w
	d.editor = NewParamsEditor(d.api, *w, d.log)
	d.editor.onSaved = d.adopt
	return nil
}

func (d *Dashboard) adopt(w models.Weld) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.weld = &w
}

func (d *Dashboard) WeldID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.weldID
}

// Weld returns the loaded weld, or nil before a successful load.
func (d *Dashboard) Weld() *models.Weld {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.weld == nil {
		return nil
	}
	w := d.weld.Clone()
	return &w
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// LoadError is the user-facing load failure message, empty when none.
func (d *Dashboard) LoadError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadErr
}

// Editor returns the params form, nil before a successful load.
func (d *Dashboard) Editor() *ParamsEditor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editor
}

// ActiveWidget is the open detail widget key, empty when none.
func (d *Dashboard) ActiveWidget() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Dashboard) ReportMethod() models.TestMethod {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reportMethod
}

func (d *Dashboard) NormsMethod() models.TestMethod {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.normsMethod
}

// ToggleReport opens the report widget of method, or closes it when it is
// already open. Opening closes the norms panel.
func (d *Dashboard) ToggleReport(method models.TestMethod) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reportMethod == method {
		d.reportMethod = ""
		d.active = ""
		return
	}
	d.reportMethod = method
	d.normsMethod = ""
	d.active = ReportWidget(method)
}

// ToggleNorms is ToggleReport for the norms panel.
func (d *Dashboard) ToggleNorms(method models.TestMethod) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.normsMethod == method {
		d.normsMethod = ""
		d.active = ""
		return
	}
	d.normsMethod = method
	d.reportMethod = ""
	d.active = NormsWidget(method)
}

// CloseWidget closes the open detail widget and releases its panel button.
func (d *Dashboard) CloseWidget() {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case strings.HasSuffix(d.active, reportSuffix):
		d.reportMethod = ""
	case strings.HasSuffix(d.active, normsSuffix):
		d.normsMethod = ""
	}
	d.active = ""
}

// NormDocument returns the selected norm document.
func (d *Dashboard) NormDocument() NormDocument {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range NormDocuments {
		if n.Value == d.norm {
			return n
		}
	}
	return NormDocuments[0]
}

func (d *Dashboard) SelectNorm(value string) error {
	for _, n := range NormDocuments {
		if n.Value == value {
			d.mu.Lock()
			d.norm = value
			d.mu.Unlock()
			return nil
		}
	}
	return ErrUnknownNorm
}

// CycleNorm selects the next norm document.
func (d *Dashboard) CycleNorm() NormDocument {
	d.mu.Lock()
	defer d.mu.Unlock()
	next := 0
	for i, n := range NormDocuments {
		if n.Value == d.norm {
			next = (i + 1) % len(NormDocuments)
			break
		}
	}
	d.norm = NormDocuments[next].Value
	return NormDocuments[next]
}
