package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
)

type fakeAPI struct {
	weld      *models.Weld
	getErr    error
	updateErr error
	patches   []models.UpdateWeldDTO
}

func (f *fakeAPI) Get(_ context.Context, id string) (*models.Weld, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	w := f.weld.Clone()
	return &w, nil
}

// Update applies the patch the way the server would for the fields the form edits.
func (f *fakeAPI) Update(_ context.Context, id string, in models.UpdateWeldDTO) (*models.Weld, error) {
	f.patches = append(f.patches, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	w := f.weld.Clone()
	if in.WeldNumber.Set {
		w.WeldNumber = *in.WeldNumber.Value
	}
	if in.Diameter.Set {
		w.Diameter = *in.Diameter.Value
	}
	if in.Thickness2.Set {
		w.Thickness2 = in.Thickness2.Value
	}
	if in.Notes.Set {
		w.Notes = in.Notes.Value
	}
	if in.WeldDate.Set {
		w.WeldDate = in.WeldDate.Value
	}
	w.UpdatedAt = w.UpdatedAt.AddDate(0, 0, 1)
	f.weld = &w
	out := w.Clone()
	return &out, nil
}

func sampleWeld() *models.Weld {
	t2 := 10.0
	return &models.Weld{
		ID:             "w-1",
		WeldNumber:     "ШС-001",
		Diameter:       219,
		Thickness1:     8,
		Thickness2:     &t2,
		QualityLevel:   models.QualityB,
		WeldingProcess: models.ProcessSMAWGMAW,
		Joint:          models.JointButt,
	}
}

func loaded(t *testing.T) (*Dashboard, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{weld: sampleWeld()}
	d := New(api, nil)
	require.NoError(t, d.Load(context.Background(), "w-1"))
	return d, api
}

func TestLoad(t *testing.T) {
	d, _ := loaded(t)
	assert.Equal(t, "w-1", d.WeldID())
	assert.False(t, d.Loading())
	assert.Empty(t, d.LoadError())
	require.NotNil(t, d.Weld())
	assert.Equal(t, "ШС-001", d.Weld().WeldNumber)
	require.NotNil(t, d.Editor())
	assert.False(t, d.Editor().HasUnsavedChanges())
}

func TestLoad_Failure(t *testing.T) {
	d := New(&fakeAPI{getErr: errors.New("boom")}, nil)
	require.Error(t, d.Load(context.Background(), "w-1"))
	assert.Equal(t, "Не удалось загрузить данные стыка", d.LoadError())
	assert.Nil(t, d.Weld())
	assert.Nil(t, d.Editor())
}

func TestWidgets_OnlyOneOpen(t *testing.T) {
	d := New(&fakeAPI{}, nil)

	d.ToggleReport(models.MethodVT)
	assert.Equal(t, "vt-report", d.ActiveWidget())
	assert.Equal(t, models.MethodVT, d.ReportMethod())

	d.ToggleNorms(models.MethodUT)
	assert.Equal(t, "ut-norms", d.ActiveWidget())
	assert.Equal(t, models.MethodUT, d.NormsMethod())
	assert.Empty(t, d.ReportMethod())

	d.ToggleReport(models.MethodRT)
	assert.Equal(t, "rt-report", d.ActiveWidget())
	assert.Empty(t, d.NormsMethod())

	d.ToggleReport(models.MethodRT)
	assert.Empty(t, d.ActiveWidget())
	assert.Empty(t, d.ReportMethod())
}

func TestCloseWidget_ReleasesPanel(t *testing.T) {
	d := New(&fakeAPI{}, nil)
	d.ToggleNorms(models.MethodMT)
	d.CloseWidget()
	assert.Empty(t, d.ActiveWidget())
	assert.Empty(t, d.NormsMethod())

	d.ToggleReport(models.MethodPT)
	d.CloseWidget()
	assert.Empty(t, d.ReportMethod())
}

func TestNormDocuments(t *testing.T) {
	d := New(&fakeAPI{}, nil)
	assert.Equal(t, "sto-15-1.3-004-2023", d.NormDocument().Value)

	require.NoError(t, d.SelectNorm("sto-2-2.4-083-2006"))
	assert.Equal(t, "СТО Газпром 2-2.4-083-2006", d.NormDocument().Name)
	assert.ErrorIs(t, d.SelectNorm("iso-5817"), ErrUnknownNorm)

	assert.Equal(t, "sto-15-1.3-004-2023", d.CycleNorm().Value)
	assert.Equal(t, "r-2-2.2-606-2011", d.CycleNorm().Value)
}

func TestEditor_EmptyValuesCompareEqual(t *testing.T) {
	e := NewParamsEditor(&fakeAPI{weld: sampleWeld()}, *sampleWeld(), nil)

	require.NoError(t, e.SetText(FieldNotes, "   "))
	assert.False(t, e.IsChanged(FieldNotes))

	e.Edit(func(w *models.Weld) {
		empty := ""
		w.WeldDate = &empty
	})
	assert.False(t, e.HasUnsavedChanges())

	require.NoError(t, e.SetText(FieldThickness2, "10"))
	assert.False(t, e.IsChanged(FieldThickness2))
}

func TestEditor_TracksAndResets(t *testing.T) {
	e := NewParamsEditor(&fakeAPI{weld: sampleWeld()}, *sampleWeld(), nil)

	require.NoError(t, e.SetText(FieldDiameter, "273,5"))
	require.NoError(t, e.SetText(FieldThickness2, ""))
	require.NoError(t, e.SetText(FieldWeldDate, "15.03.2024"))
	assert.Equal(t, []string{FieldDiameter, FieldThickness2, FieldWeldDate}, e.Changed())
	assert.Equal(t, "273.5", e.Text(FieldDiameter))
	assert.Equal(t, "2024-03-15", e.Text(FieldWeldDate))

	require.NoError(t, e.SetText(FieldDiameter, "219"))
	assert.False(t, e.IsChanged(FieldDiameter))

	e.Reset()
	assert.False(t, e.HasUnsavedChanges())
	assert.Equal(t, "10", e.Text(FieldThickness2))
	assert.Empty(t, e.Text(FieldWeldDate))
}

func TestEditor_SetTextRejects(t *testing.T) {
	e := NewParamsEditor(&fakeAPI{weld: sampleWeld()}, *sampleWeld(), nil)
	assert.ErrorIs(t, e.SetText(FieldWeldNumber, " "), ErrRequired)
	assert.ErrorIs(t, e.SetText(FieldDiameter, ""), ErrRequired)
	assert.ErrorIs(t, e.SetText(FieldThickness1, "abc"), ErrBadValue)
	assert.ErrorIs(t, e.SetText(FieldDiameter, "Inf"), ErrBadValue)
	assert.ErrorIs(t, e.SetText(FieldThickness2, "NaN"), ErrBadValue)
	assert.ErrorIs(t, e.SetText(FieldQualityLevel, "Z"), ErrBadValue)
	assert.ErrorIs(t, e.SetText(FieldWeldDate, "2024/03/15"), ErrBadValue)
	assert.ErrorIs(t, e.SetText("conclusion", "OK"), ErrUnknownField)
	assert.False(t, e.HasUnsavedChanges())

	require.NoError(t, e.SetText(FieldQualityLevel, "a"))
	assert.Equal(t, "A", e.Text(FieldQualityLevel))
}

func TestEditor_SaveSendsOnlyChangedFields(t *testing.T) {
	d, api := loaded(t)
	e := d.Editor()

	require.NoError(t, e.Save(context.Background()))
	assert.Empty(t, api.patches, "nothing to send")

	require.NoError(t, e.SetText(FieldWeldNumber, "ШС-002"))
	require.NoError(t, e.SetText(FieldThickness2, ""))
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.patches, 1)
	want := models.UpdateWeldDTO{
		WeldNumber: models.Some("ШС-002"),
		Thickness2: models.Null[float64](),
	}
	if diff := cmp.Diff(want, api.patches[0]); diff != "" {
		t.Fatalf("patch mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, e.HasUnsavedChanges())
	assert.Equal(t, "ШС-002", e.Weld().WeldNumber)
	assert.Equal(t, "ШС-002", d.Weld().WeldNumber, "dashboard adopts the saved weld")
	assert.Nil(t, d.Weld().Thickness2)

	notes := e.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, registry.SeveritySuccess, notes[0].Severity)
	assert.Equal(t, `Стык "ШС-002" обновлён`, notes[0].Detail)
}

func TestEditor_SaveFailureKeepsChanges(t *testing.T) {
	api := &fakeAPI{
		weld:      sampleWeld(),
		updateErr: &client.APIError{Status: http.StatusBadRequest, Message: "validation failed", Messages: []string{"diameter must not be less than 1"}},
	}
	e := NewParamsEditor(api, *sampleWeld(), nil)
	require.NoError(t, e.SetText(FieldDiameter, "0.5"))

	require.Error(t, e.Save(context.Background()))
	assert.True(t, e.IsChanged(FieldDiameter))
	assert.False(t, e.Saving())

	notes := e.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, registry.SeverityError, notes[0].Severity)
	assert.Equal(t, `Ошибка обновления стыка "ШС-001": diameter must not be less than 1`, notes[0].Detail)
}
