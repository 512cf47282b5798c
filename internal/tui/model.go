// Package tui is the terminal front end of the weld registry.
package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/dashboard"
	"github.com/zaqqye/weld_backend_v1/internal/layout"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
	"github.com/zaqqye/weld_backend_v1/internal/theme"
	"github.com/zaqqye/weld_backend_v1/internal/view"
)

// CellWidth is the pixel width one terminal column counts as for layout breakpoints.
const CellWidth = 8

const maxToasts = 3

type page int

const (
	pageRegistry page = iota
	pageDashboard
)

type formKind int

const (
	formNone formKind = iota
	formDraft
	formObject
	formParam
)

type form struct {
	kind   formKind
	fields []string
	step   int
	values []string
}

var formLabels = map[string]string{
	"objectName": "Объект строительства",
	"contractor": "Подрядчик",
	"customer":   "Заказчик",
}

func formLabel(field string) string {
	if l, ok := formLabels[field]; ok {
		return l
	}
	return registry.HeaderFor(field)
}

// opDoneMsg reports a finished API call.
type opDoneMsg struct {
	op  string
	err error
}

type Deps struct {
	Table     *registry.Table
	Dashboard *dashboard.Dashboard
	Layout    *layout.Service
	Theme     *theme.Service
	Log       *zap.Logger
	// Events, when set, triggers a registry reload for every change received.
	Events <-chan models.WeldEvent
}

// Model is the bubbletea model. Page state lives in the services it drives.
type Model struct {
	ctx    context.Context
	table  *registry.Table
	dash   *dashboard.Dashboard
	layout *layout.Service
	theme  *theme.Service
	log    *zap.Logger
	events <-chan models.WeldEvent

	keys  keyMap
	help  help.Model
	input textinput.Model
	form  form

	page       page
	cursor     int
	focus      int
	normsPanel bool
	toasts     []registry.Notification
	width      int
}

func New(ctx context.Context, d Deps) Model {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	in := textinput.New()
	in.CharLimit = 120
	in.Width = 40
	return Model{
		ctx:    ctx,
		table:  d.Table,
		dash:   d.Dashboard,
		layout: d.Layout,
		theme:  d.Theme,
		log:    d.Log,
		events: d.Events,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  in,
	}
}

// Run starts the program on the terminal and blocks until it exits.
func Run(ctx context.Context, d Deps) error {
	_, err := tea.NewProgram(New(ctx, d), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// weldChangedMsg carries one event from the change feed.
type weldChangedMsg struct{ ev models.WeldEvent }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run("load", m.table.Load), m.waitEvent())
}

func (m Model) waitEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return weldChangedMsg{ev: ev}
	}
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.layout.Resize(msg.Width * CellWidth)
		return m, nil
	case opDoneMsg:
		if msg.err != nil {
			m.log.Debug("tui: operation failed", zap.String("op", msg.op), zap.Error(msg.err))
		}
		if msg.op == "open" {
			m.focus = 0
		}
		m.collect()
		m.clampCursor()
		return m, nil
	case weldChangedMsg:
		m.log.Debug("tui: weld changed", zap.String("type", string(msg.ev.Type)), zap.String("id", msg.ev.ID))
		if m.page == pageRegistry && m.form.kind == formNone {
			return m, tea.Batch(m.run("load", m.table.Load), m.waitEvent())
		}
		return m, m.waitEvent()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) collect() {
	notes := m.table.Notifications()
	if e := m.dash.Editor(); e != nil {
		notes = append(notes, e.Notifications()...)
	}
	m.pushToasts(notes...)
}

func (m *Model) pushToasts(notes ...registry.Notification) {
	m.toasts = append(m.toasts, notes...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

func (m *Model) clampCursor() {
	n := len(m.table.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.kind != formNone {
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Menu):
		m.layout.ToggleMenu()
		return m, nil
	case key.Matches(msg, m.keys.Config):
		m.layout.ToggleConfigSidebar()
		return m, nil
	case key.Matches(msg, m.keys.Dark):
		m.theme.ToggleDarkMode()
		return m, nil
	}

	if m.layout.State().ConfigVisible && m.handleThemeKey(msg) {
		return m, nil
	}

	if m.page == pageDashboard {
		return m.dashboardKey(msg)
	}
	return m.registryKey(msg)
}

func (m Model) handleThemeKey(msg tea.KeyMsg) bool {
	cfg := m.theme.Config()
	catalog := m.theme.Catalog()
	var err error
	switch {
	case key.Matches(msg, m.keys.Preset):
		err = m.theme.SetPreset(next(catalog.PresetNames(), cfg.Preset))
	case key.Matches(msg, m.keys.Primary):
		err = m.theme.SetPrimary(next(catalog.PrimaryNames(), cfg.Primary))
	case key.Matches(msg, m.keys.Surface):
		err = m.theme.SetSurface(next(append([]string{""}, catalog.SurfaceNames()...), cfg.SurfaceName()))
	case key.Matches(msg, m.keys.Mode):
		mode := theme.MenuOverlay
		if m.theme.IsOverlayMenu() {
			mode = theme.MenuStatic
		}
		err = m.theme.SetMenuMode(mode)
	case key.Matches(msg, m.keys.Default):
		m.theme.ResetToDefaults()
	default:
		return false
	}
	if err != nil {
		m.log.Warn("tui: theme change rejected", zap.Error(err))
	}
	return true
}

// next returns the entry after cur, wrapping; an unknown cur yields the first entry.
func next(list []string, cur string) string {
	if len(list) == 0 {
		return cur
	}
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}

func (m Model) registryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if pending := m.table.PendingDelete(); pending != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m, m.run("delete", m.table.ConfirmDelete)
		case key.Matches(msg, m.keys.Cancel):
			m.table.CancelDelete()
		}
		return m, nil
	}

	rows := m.table.Rows()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= len(rows) {
			return m, nil
		}
		id, ok := m.table.Open(rows[m.cursor])
		if !ok {
			return m, nil
		}
		m.page = pageDashboard
		m.layout.OnMenuItemClick()
		dash := m.dash
		return m, m.run("open", func(ctx context.Context) error { return dash.Load(ctx, id) })
	case key.Matches(msg, m.keys.Add):
		m.table.StartAdding()
		m.cursor = 0
		m.startForm(formDraft, registry.DraftFields, "")
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(rows) && !rows[m.cursor].Draft {
			_ = m.table.RequestDelete(rows[m.cursor].Weld.ID)
			m.collect()
		}
	case key.Matches(msg, m.keys.Object):
		target := nextObject(m.table.Objects(), m.table.SelectedObject())
		table := m.table
		m.cursor = 0
		return m, m.run("select", func(ctx context.Context) error { return table.SelectObject(ctx, target) })
	case key.Matches(msg, m.keys.NewObj):
		m.startForm(formObject, []string{"objectName", "contractor", "customer"}, "")
	case key.Matches(msg, m.keys.Reload):
		return m, m.run("load", m.table.Load)
	case key.Matches(msg, m.keys.Column):
		n := int(msg.String()[0] - '1')
		if n >= 0 && n < len(registry.Columns) {
			m.table.ToggleColumn(registry.Columns[n].Field)
		}
	}
	return m, nil
}

// nextObject cycles all objects then back to no filter.
func nextObject(objs []registry.ConstructionObject, cur *registry.ConstructionObject) *registry.ConstructionObject {
	if len(objs) == 0 {
		return nil
	}
	if cur == nil {
		return &objs[0]
	}
	for i := range objs {
		if objs[i].ObjectName == cur.ObjectName {
			if i+1 < len(objs) {
				return &objs[i+1]
			}
			return nil
		}
	}
	return &objs[0]
}

func (m Model) dashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := dashboard.EditableFields()
	editor := m.dash.Editor()

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.dash.ActiveWidget() != "" {
			m.dash.CloseWidget()
			return m, nil
		}
		m.page = pageRegistry
		return m, m.run("load", m.table.Load)
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus < len(fields)-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.Open):
		if editor != nil {
			field := fields[m.focus]
			m.startForm(formParam, []string{field}, editor.Text(field))
		}
	case key.Matches(msg, m.keys.Save):
		if editor != nil {
			return m, m.run("save", editor.Save)
		}
	case key.Matches(msg, m.keys.Reset):
		if editor != nil {
			editor.Reset()
		}
	case key.Matches(msg, m.keys.Panel):
		m.normsPanel = !m.normsPanel
	case key.Matches(msg, m.keys.Method):
		method := models.TestMethods[int(msg.String()[0]-'1')]
		if m.normsPanel {
			m.dash.ToggleNorms(method)
		} else {
			m.dash.ToggleReport(method)
		}
	case key.Matches(msg, m.keys.Close):
		m.dash.CloseWidget()
	case key.Matches(msg, m.keys.Norm):
		m.dash.CycleNorm()
	}
	return m, nil
}

func (m *Model) startForm(kind formKind, fields []string, initial string) {
	m.form = form{kind: kind, fields: fields, values: make([]string, len(fields))}
	m.input.Reset()
	m.input.SetValue(initial)
	m.input.Placeholder = formLabel(fields[0])
	m.input.Focus()
}

func (m *Model) closeForm() {
	m.form = form{}
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.form.kind == formDraft {
			m.table.CancelAdding()
		}
		m.closeForm()
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	field := m.form.fields[m.form.step]
	value := m.input.Value()

	switch m.form.kind {
	case formDraft:
		var err error
		m.table.EditDraft(func(d *registry.Draft) { err = d.SetText(field, value) })
		if err != nil {
			m.pushToasts(invalidValue(field))
			return m, nil
		}
	case formParam:
		if err := m.dash.Editor().SetText(field, value); err != nil {
			m.pushToasts(invalidValue(field))
		}
		m.closeForm()
		return m, nil
	}

	m.form.values[m.form.step] = strings.TrimSpace(value)
	m.form.step++
	if m.form.step < len(m.form.fields) {
		m.input.Reset()
		m.input.Placeholder = formLabel(m.form.fields[m.form.step])
		return m, nil
	}

	done := m.form
	m.closeForm()
	table := m.table
	if done.kind == formObject {
		obj := registry.ConstructionObject{ObjectName: done.values[0], Contractor: done.values[1], Customer: done.values[2]}
		return m, m.run("object", func(ctx context.Context) error { return table.AddObject(ctx, obj) })
	}
	return m, m.run("create", table.Save)
}

func invalidValue(field string) registry.Notification {
	return registry.Notification{
		Severity: registry.SeverityWarn,
		Summary:  "Внимание",
		Detail:   "Некорректное значение: " + formLabel(field),
	}
}

func (m Model) View() string {
	st := view.NewStyles(m.theme.Palette())

	var body string
	var keys help.KeyMap = registryHelp{m.keys}
	if m.page == pageDashboard {
		body = view.Dashboard(st, m.dashboardView())
		keys = dashboardHelp{m.keys}
	} else {
		body = view.RegistryTable(st, view.TableView{
			Rows:          m.table.Rows(),
			Columns:       m.table.VisibleColumns(),
			Draft:         m.table.Draft(),
			Cursor:        m.cursor,
			Object:        m.table.SelectedObject(),
			Loading:       m.table.Loading(),
			Saving:        m.table.Saving(),
			DeletingID:    m.table.DeletingID(),
			PendingDelete: m.table.PendingDelete(),
		})
	}
	if m.form.kind != formNone && m.form.kind != formParam {
		body += "\n" + st.Title.Render(formLabel(m.form.fields[m.form.step])+": ") + m.input.View()
	}
	if toasts := view.Toasts(st, m.toasts); toasts != "" {
		body += "\n\n" + toasts
	}

	state := m.layout.State()
	if state.ConfigVisible {
		keys = configHelp{m.keys}
	}
	return view.Chrome(st, view.Frame{
		Classes:    m.layout.ContainerClass(),
		ConfigOpen: state.ConfigVisible,
		Config:     m.theme.Config(),
		Catalog:    m.theme.Catalog(),
		ActiveMenu: int(m.page),
		Body:       body,
		Footer:     m.help.View(keys),
	})
}

func (m Model) dashboardView() view.DashboardView {
	v := view.DashboardView{
		Weld:         m.dash.Weld(),
		Loading:      m.dash.Loading(),
		LoadError:    m.dash.LoadError(),
		Focus:        m.focus,
		ReportMethod: m.dash.ReportMethod(),
		NormsMethod:  m.dash.NormsMethod(),
		ActiveWidget: m.dash.ActiveWidget(),
		Norm:         m.dash.NormDocument(),
	}
	editor := m.dash.Editor()
	if editor == nil {
		return v
	}
	for _, f := range dashboard.EditableFields() {
		v.Fields = append(v.Fields, view.FieldView{Field: f, Text: editor.Text(f), Changed: editor.IsChanged(f)})
	}
	v.Saving = editor.Saving()
	v.Unsaved = editor.HasUnsavedChanges()
	if m.form.kind == formParam {
		v.EditField = m.form.fields[0]
		v.EditBuffer = m.input.Value()
	}
	return v
}
