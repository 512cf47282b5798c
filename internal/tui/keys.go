package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Object  key.Binding
	NewObj  key.Binding
	Reload  key.Binding
	Column  key.Binding
	Save    key.Binding
	Reset   key.Binding
	Panel   key.Binding
	Method  key.Binding
	Close   key.Binding
	Norm    key.Binding
	Menu    key.Binding
	Config  key.Binding
	Dark    key.Binding
	Preset  key.Binding
	Primary key.Binding
	Surface key.Binding
	Mode    key.Binding
	Default key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "вверх")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "вниз")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "открыть")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "назад")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "добавить")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "удалить")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "да")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "нет")),
		Object:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "объект")),
		NewObj:  key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "новый объект")),
		Reload:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "обновить")),
		Column:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "колонки")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "сохранить")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "сбросить")),
		Panel:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "заключения/нормы")),
		Method:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "метод НК")),
		Close:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "закрыть")),
		Norm:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "документ")),
		Menu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "меню")),
		Config:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "тема")),
		Dark:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "тёмная")),
		Preset:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "пресет")),
		Primary: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "цвет")),
		Surface: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "поверхность")),
		Mode:    key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "режим меню")),
		Default: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "по умолчанию")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "выход")),
	}
}

// registryHelp is the footer for the registry page.
type registryHelp struct{ k keyMap }

func (h registryHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Open, h.k.Add, h.k.Delete, h.k.Object, h.k.NewObj, h.k.Column, h.k.Menu, h.k.Config, h.k.Quit}
}

func (h registryHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type dashboardHelp struct{ k keyMap }

func (h dashboardHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Open, h.k.Save, h.k.Reset, h.k.Panel, h.k.Method, h.k.Close, h.k.Norm, h.k.Back, h.k.Quit}
}

func (h dashboardHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type configHelp struct{ k keyMap }

func (h configHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Preset, h.k.Primary, h.k.Surface, h.k.Mode, h.k.Dark, h.k.Default, h.k.Config}
}

func (h configHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
