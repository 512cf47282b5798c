package models

import (
	"encoding/json"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateWeldDTO_DistinguishesAbsentNullAndValue(t *testing.T) {
	var dto UpdateWeldDTO
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null,"diameter":325,"testMethods":["VT"]}`), &dto))

	assert.True(t, dto.Notes.IsNull())
	assert.False(t, dto.ObjectName.Set)
	require.NotNil(t, dto.Diameter.Value)
	assert.Equal(t, 325.0, *dto.Diameter.Value)
	assert.Equal(t, []TestMethod{MethodVT}, *dto.TestMethods.Value)
	assert.False(t, dto.Empty())
}

func TestUpdateWeldDTO_MarshalOmitsUnsetFields(t *testing.T) {
	dto := UpdateWeldDTO{Notes: Null[string](), WeldNumber: Some("ШС-9")}
	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":null,"weldNumber":"ШС-9"}`, string(raw))
}

func TestUpdateWeldDTO_Empty(t *testing.T) {
	var dto UpdateWeldDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dto))
	assert.True(t, dto.Empty())
}

func TestCreateWeldDTO_BoundsMatchConstants(t *testing.T) {
	typ := reflect.TypeOf(CreateWeldDTO{})
	for field, min := range map[string]float64{
		"Diameter":   MinDiameter,
		"Thickness1": MinThickness,
		"Thickness2": MinThickness,
	} {
		f, ok := typ.FieldByName(field)
		require.True(t, ok)
		assert.Contains(t, f.Tag.Get("binding"), "gte="+strconv.FormatFloat(min, 'f', -1, 64), field)
	}
}
