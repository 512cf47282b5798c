package models

// QualityLevel of a weld joint per the inspection norm.
type QualityLevel string

const (
	QualityA QualityLevel = "A"
	QualityB QualityLevel = "B"
	QualityC QualityLevel = "C"
)

var QualityLevels = []QualityLevel{QualityA, QualityB, QualityC}

func (q QualityLevel) Valid() bool {
	switch q {
	case QualityA, QualityB, QualityC:
		return true
	}
	return false
}

func (q QualityLevel) Label() string {
	switch q {
	case QualityA:
		return "A — Высший"
	case QualityB:
		return "B — Средний"
	case QualityC:
		return "C — Базовый"
	}
	return string(q)
}

type WeldingProcess string

const (
	ProcessSMAWGMAW WeldingProcess = "SMAW_GMAW"
	ProcessGTAW     WeldingProcess = "GTAW"
	ProcessSAW      WeldingProcess = "SAW"
)

var WeldingProcesses = []WeldingProcess{ProcessSMAWGMAW, ProcessGTAW, ProcessSAW}

func (p WeldingProcess) Valid() bool {
	switch p {
	case ProcessSMAWGMAW, ProcessGTAW, ProcessSAW:
		return true
	}
	return false
}

// ShortLabel is the abbreviation used in table cells.
func (p WeldingProcess) ShortLabel() string {
	switch p {
	case ProcessSMAWGMAW:
		return "РД/МП"
	case ProcessGTAW:
		return "А"
	case ProcessSAW:
		return "АФ"
	}
	return string(p)
}

func (p WeldingProcess) Label() string {
	switch p {
	case ProcessSMAWGMAW:
		return "Ручная дуговая, полуавтоматическая"
	case ProcessGTAW:
		return "Автоматическая в защитных газах"
	case ProcessSAW:
		return "Автоматическая под флюсом"
	}
	return string(p)
}

type JointType string

const (
	JointButt      JointType = "BUTT"
	JointFilletLap JointType = "FILLET_LAP"
)

var JointTypes = []JointType{JointButt, JointFilletLap}

func (j JointType) Valid() bool {
	switch j {
	case JointButt, JointFilletLap:
		return true
	}
	return false
}

func (j JointType) Label() string {
	switch j {
	case JointButt:
		return "Стыковое"
	case JointFilletLap:
		return "Угловое/Нахл."
	}
	return string(j)
}

// TestMethod is a non-destructive testing technique.
type TestMethod string

const (
	MethodVT TestMethod = "VT"
	MethodUT TestMethod = "UT"
	MethodRT TestMethod = "RT"
	MethodMT TestMethod = "MT"
	MethodPT TestMethod = "PT"
)

var TestMethods = []TestMethod{MethodVT, MethodUT, MethodRT, MethodMT, MethodPT}

func (m TestMethod) Valid() bool {
	switch m {
	case MethodVT, MethodUT, MethodRT, MethodMT, MethodPT:
		return true
	}
	return false
}

func (m TestMethod) Label() string {
	switch m {
	case MethodVT:
		return "ВИК"
	case MethodUT:
		return "УЗК"
	case MethodRT:
		return "РК"
	case MethodMT:
		return "МК"
	case MethodPT:
		return "ПВК"
	}
	return string(m)
}

type Conclusion string

const (
	ConclusionOK     Conclusion = "OK"
	ConclusionRepair Conclusion = "REPAIR"
	ConclusionCut    Conclusion = "CUT"
)

var Conclusions = []Conclusion{ConclusionOK, ConclusionRepair, ConclusionCut}

func (c Conclusion) Valid() bool {
	switch c {
	case ConclusionOK, ConclusionRepair, ConclusionCut:
		return true
	}
	return false
}

func (c Conclusion) Label() string {
	switch c {
	case ConclusionOK:
		return "Годен"
	case ConclusionRepair:
		return "Ремонт"
	case ConclusionCut:
		return "Вырезать"
	}
	return string(c)
}

type WeldStatus string

const (
	StatusDraft      WeldStatus = "draft"
	StatusInProgress WeldStatus = "in_progress"
	StatusDone       WeldStatus = "done"
)

var WeldStatuses = []WeldStatus{StatusDraft, StatusInProgress, StatusDone}

func (s WeldStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (s WeldStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Черновик"
	case StatusInProgress:
		return "В работе"
	case StatusDone:
		return "Завершён"
	}
	return string(s)
}
