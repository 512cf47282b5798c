package registry

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
)

type fakeAPI struct {
	welds     []models.Weld
	queries   []client.ListQuery
	created   []models.CreateWeldDTO
	deleted   []string
	listErr   error
	createErr error
	deleteErr error
}

func (f *fakeAPI) List(_ context.Context, q client.ListQuery) ([]models.Weld, error) {
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Weld
	for _, w := range f.welds {
		if q.ObjectName == "" || models.StringOrEmpty(w.ObjectName) == q.ObjectName {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, in models.CreateWeldDTO) (*models.Weld, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Weld{ID: "new", WeldNumber: *in.WeldNumber, ObjectName: in.ObjectName}, nil
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func ptr[T any](v T) *T { return &v }

func seeded() *fakeAPI {
	return &fakeAPI{welds: []models.Weld{
		{ID: "1", WeldNumber: "ШС-001", ObjectName: ptr("Газопровод"), Contractor: ptr("СтройМонтаж"), Customer: ptr("Газпром")},
		{ID: "2", WeldNumber: "ШС-002", ObjectName: ptr("Газопровод"), Contractor: ptr("СтройМонтаж"), Customer: ptr("Газпром")},
		{ID: "3", WeldNumber: "К-1", ObjectName: ptr("Нефтепровод")},
		{ID: "4", WeldNumber: "Б/О"},
	}}
}

func loaded(t *testing.T, api *fakeAPI) *Table {
	t.Helper()
	tbl := NewTable(api, nil)
	require.NoError(t, tbl.Load(context.Background()))
	return tbl
}

func TestLoad_CollectsUniqueObjects(t *testing.T) {
	tbl := loaded(t, seeded())
	assert.Len(t, tbl.Welds(), 4)
	assert.Equal(t, []ConstructionObject{
		{ObjectName: "Газопровод", Contractor: "СтройМонтаж", Customer: "Газпром"},
		{ObjectName: "Нефтепровод"},
	}, tbl.Objects())
	assert.False(t, tbl.Loading())
}

func TestLoad_FailureNotifies(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("connection refused")}
	tbl := NewTable(api, nil)
	assert.Error(t, tbl.Load(context.Background()))
	n := tbl.Notifications()
	require.Len(t, n, 1)
	assert.Equal(t, SeverityError, n[0].Severity)
	assert.Empty(t, tbl.Notifications())
}

func TestRows_DraftRowLeadsWhileAdding(t *testing.T) {
	tbl := loaded(t, seeded())
	tbl.StartAdding()
	rows := tbl.Rows()
	require.Len(t, rows, 5)
	assert.True(t, rows[0].Draft)
	_, ok := tbl.Open(rows[0])
	assert.False(t, ok)
	id, ok := tbl.Open(rows[1])
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	d := tbl.Draft()
	assert.Equal(t, models.QualityB, d.QualityLevel)
	assert.Equal(t, models.ProcessSMAWGMAW, d.WeldingProcess)
	assert.Equal(t, models.JointButt, d.Joint)
	assert.Equal(t, models.StatusDraft, d.WeldStatus)

	tbl.CancelAdding()
	assert.Len(t, tbl.Rows(), 4)
}

func TestSave_InvalidDraftSendsNothing(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	tbl.StartAdding()
	tbl.EditDraft(func(d *Draft) {
		d.WeldNumber = "ШС-9"
		d.Diameter = ptr(0.5)
		d.Thickness1 = ptr(8.0)
	})

	assert.ErrorIs(t, tbl.Save(context.Background()), ErrInvalidDraft)
	assert.Empty(t, api.created)
	assert.True(t, tbl.Adding())
	assert.Equal(t, SeverityWarn, tbl.Notifications()[0].Severity)
}

func TestSave_RequiresObject(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	tbl.StartAdding()
	tbl.EditDraft(func(d *Draft) {
		d.WeldNumber = "ШС-9"
		d.Diameter = ptr(219.0)
		d.Thickness1 = ptr(8.0)
	})
	assert.ErrorIs(t, tbl.Save(context.Background()), ErrNoObject)
	assert.Empty(t, api.created)
}

func TestSave_PrependsCreatedWeld(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	ctx := context.Background()
	require.NoError(t, tbl.SelectObject(ctx, &tbl.Objects()[0]))
	require.Len(t, tbl.Welds(), 2)

	tbl.StartAdding()
	tbl.EditDraft(func(d *Draft) {
		d.WeldNumber = "ШС-003"
		d.Diameter = ptr(219.0)
		d.Thickness1 = ptr(8.0)
		d.Notes = "  "
		d.TestMethods = []models.TestMethod{models.MethodVT}
	})
	require.NoError(t, tbl.Save(ctx))

	require.Len(t, api.created, 1)
	sent := api.created[0]
	assert.Equal(t, "Газопровод", *sent.ObjectName)
	assert.Equal(t, "Газпром", *sent.Customer)
	assert.Nil(t, sent.Notes)
	assert.Nil(t, sent.WeldDate)
	assert.Equal(t, []models.TestMethod{models.MethodVT}, sent.TestMethods)

	welds := tbl.Welds()
	require.Len(t, welds, 3)
	assert.Equal(t, "ШС-003", welds[0].WeldNumber)
	assert.False(t, tbl.Adding())
	assert.Equal(t, SeveritySuccess, tbl.Notifications()[0].Severity)
}

func TestSave_ServerErrorKeepsDraft(t *testing.T) {
	api := seeded()
	api.createErr = &client.APIError{Status: http.StatusBadRequest, Messages: []string{"a", "b"}}
	tbl := loaded(t, api)
	ctx := context.Background()
	require.NoError(t, tbl.AddObject(ctx, ConstructionObject{ObjectName: "Новый", Contractor: "ООО", Customer: "ПАО"}))
	tbl.Notifications()

	tbl.StartAdding()
	tbl.EditDraft(func(d *Draft) {
		d.WeldNumber = "1"
		d.Diameter = ptr(57.0)
		d.Thickness1 = ptr(3.0)
	})
	assert.Error(t, tbl.Save(ctx))
	assert.True(t, tbl.Adding())
	assert.Equal(t, "1", tbl.Draft().WeldNumber)
	assert.False(t, tbl.Saving())
	n := tbl.Notifications()
	require.Len(t, n, 1)
	assert.Equal(t, "a, b", n[0].Detail)
}

func TestAddObject_ValidatesAndSelects(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	ctx := context.Background()

	assert.ErrorIs(t, tbl.AddObject(ctx, ConstructionObject{ObjectName: "X"}), ErrInvalidObject)
	assert.Nil(t, tbl.SelectedObject())

	require.NoError(t, tbl.AddObject(ctx, ConstructionObject{ObjectName: "КС Ухта", Contractor: "ООО", Customer: "ПАО"}))
	assert.Equal(t, "КС Ухта", tbl.SelectedObject().ObjectName)
	assert.Equal(t, "КС Ухта", tbl.Objects()[0].ObjectName)
	assert.Empty(t, tbl.Welds())
	assert.Equal(t, "КС Ухта", api.queries[len(api.queries)-1].ObjectName)
}

func TestDelete_ShrinksByOneOnSuccess(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	ctx := context.Background()

	require.NoError(t, tbl.RequestDelete("2"))
	assert.Equal(t, "ШС-002", tbl.PendingDelete().WeldNumber)
	assert.Empty(t, api.deleted)

	require.NoError(t, tbl.ConfirmDelete(ctx))
	assert.Equal(t, []string{"2"}, api.deleted)
	assert.Len(t, tbl.Welds(), 3)
	assert.Nil(t, tbl.PendingDelete())
	assert.Empty(t, tbl.DeletingID())
}

func TestDelete_FailureKeepsRow(t *testing.T) {
	api := seeded()
	api.deleteErr = &client.APIError{Status: http.StatusNotFound, Message: "weld not found"}
	tbl := loaded(t, api)

	require.NoError(t, tbl.RequestDelete("1"))
	assert.Error(t, tbl.ConfirmDelete(context.Background()))
	assert.Len(t, tbl.Welds(), 4)
	n := tbl.Notifications()
	require.Len(t, n, 1)
	assert.Equal(t, SeverityError, n[0].Severity)
	assert.Equal(t, "weld not found", n[0].Detail)
}

func TestDelete_CancelAndNothingPending(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	require.NoError(t, tbl.RequestDelete("1"))
	tbl.CancelDelete()
	assert.ErrorIs(t, tbl.ConfirmDelete(context.Background()), ErrNoPending)
	assert.Empty(t, api.deleted)
	assert.Error(t, tbl.RequestDelete("missing"))
}

func TestColumnVisibility(t *testing.T) {
	tbl := NewTable(&fakeAPI{}, nil)
	fields := func() []string {
		var out []string
		for _, c := range tbl.VisibleColumns() {
			out = append(out, c.Field)
		}
		return out
	}
	assert.Equal(t, []string{"weldNumber", "diameter", "thickness1", "thickness2", "qualityLevel", "testMethods", "conclusion"}, fields())

	tbl.ToggleColumn("notes")
	assert.True(t, tbl.IsColumnVisible("notes"))
	tbl.ToggleColumn("diameter")
	assert.NotContains(t, fields(), "diameter")
}

func TestFormatCell(t *testing.T) {
	repair := models.ConclusionRepair
	done := models.StatusDone
	w := models.Weld{
		WeldNumber:     "ШС-001",
		Diameter:       219,
		Thickness1:     8.5,
		QualityLevel:   models.QualityA,
		WeldDate:       ptr("2024-01-15"),
		WeldingProcess: models.ProcessSAW,
		Joint:          models.JointFilletLap,
		TestMethods:    []models.TestMethod{models.MethodVT, models.MethodRT},
		Conclusion:     &repair,
		WeldStatus:     &done,
	}
	cases := map[string]string{
		"weldNumber":     "ШС-001",
		"diameter":       "219",
		"thickness1":     "8.5",
		"thickness2":     "-",
		"qualityLevel":   "A",
		"weldDate":       "15.01.2024",
		"weldingProcess": "АФ",
		"joint":          "Угловое/Нахл.",
		"testMethods":    "ВИК, РК",
		"conclusion":     "Ремонт",
		"weldStatus":     "Завершён",
		"notes":          "-",
		"unknown":        "-",
	}
	for field, want := range cases {
		assert.Equal(t, want, FormatCell(w, field), field)
	}
	assert.Equal(t, "-", FormatCell(models.Weld{}, "testMethods"))
	assert.Equal(t, "вчера", FormatDate("вчера"))
}

func TestDraftSetText(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SetText("weldNumber", " ШС-9 "))
	require.NoError(t, d.SetText("diameter", "219,5"))
	require.NoError(t, d.SetText("thickness1", "8"))
	require.NoError(t, d.SetText("qualityLevel", "a"))
	require.NoError(t, d.SetText("weldDate", "15.03.2024"))
	assert.True(t, d.Valid())
	assert.Equal(t, "ШС-9", d.WeldNumber)
	assert.Equal(t, 219.5, *d.Diameter)
	assert.Equal(t, models.QualityA, d.QualityLevel)
	assert.Equal(t, "2024-03-15", d.WeldDate)

	require.NoError(t, d.SetText("thickness1", ""))
	assert.Nil(t, d.Thickness1)
	assert.False(t, d.Valid())

	assert.ErrorIs(t, d.SetText("diameter", "abc"), ErrBadValue)
	assert.ErrorIs(t, d.SetText("qualityLevel", "D"), ErrBadValue)
	assert.ErrorIs(t, d.SetText("weldDate", "15/03/2024"), ErrBadValue)
	assert.Equal(t, "Номер стыка", HeaderFor("weldNumber"))
}

func TestParseNumber_RejectsNonFinite(t *testing.T) {
	for _, in := range []string{"Inf", "+Inf", "-inf", "NaN", "1e400"} {
		_, err := ParseNumber(in)
		assert.ErrorIs(t, err, ErrBadValue, in)
	}
	v, err := ParseNumber(" 0,1 ")
	require.NoError(t, err)
	assert.Equal(t, models.MinThickness, v)
}

func TestSave_NonFiniteDiameterNeverReachesAPI(t *testing.T) {
	api := seeded()
	tbl := loaded(t, api)
	ctx := context.Background()
	require.NoError(t, tbl.SelectObject(ctx, &tbl.Objects()[0]))

	tbl.StartAdding()
	var setErr error
	tbl.EditDraft(func(d *Draft) {
		d.WeldNumber = "ШС-9"
		d.Thickness1 = ptr(8.0)
		setErr = d.SetText("diameter", "Inf")
	})
	assert.ErrorIs(t, setErr, ErrBadValue)
	assert.Nil(t, tbl.Draft().Diameter)

	assert.ErrorIs(t, tbl.Save(ctx), ErrInvalidDraft)
	assert.Empty(t, api.created)
}
