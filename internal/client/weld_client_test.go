package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zaqqye/weld_backend_v1/internal/client"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
	"github.com/zaqqye/weld_backend_v1/internal/routes"
	"github.com/zaqqye/weld_backend_v1/internal/service"
)

func newClient(t *testing.T) *client.WeldClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewWeldService(repository.NewMemoryWeldRepository(), nil, nil)
	srv := httptest.NewServer(routes.NewRouter(routes.Deps{Welds: svc}))
	t.Cleanup(srv.Close)
	return client.NewWeldClient(srv.URL+"/api/", zaptest.NewLogger(t))
}

func ptr[T any](v T) *T { return &v }

func validWeld(number, object string) models.CreateWeldDTO {
	return models.CreateWeldDTO{
		ObjectName:   ptr(object),
		WeldNumber:   ptr(number),
		Diameter:     ptr(219.0),
		Thickness1:   ptr(8.0),
		QualityLevel: ptr(models.QualityB),
		TestMethods:  []models.TestMethod{models.MethodVT},
	}
}

func TestClientRoundTrip(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, validWeld("ШС-001", "Газопровод"))
	require.NoError(t, err)
	assert.Equal(t, models.JointButt, created.Joint)

	_, err = c.Create(ctx, validWeld("К-2", "Нефтепровод"))
	require.NoError(t, err)

	all, err := c.List(ctx, client.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := c.List(ctx, client.ListQuery{ObjectName: "Газопровод", Search: "шс"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, created.ID, scoped[0].ID)

	updated, err := c.Update(ctx, created.ID, models.UpdateWeldDTO{
		Notes:      models.Some("повторный контроль"),
		ObjectName: models.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "повторный контроль", *updated.Notes)
	assert.Nil(t, updated.ObjectName)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Notes, got.Notes)

	data, err := c.Export(ctx, client.ListQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestClientSurfacesValidationMessages(t *testing.T) {
	c := newClient(t)
	in := validWeld("", "Газопровод")
	in.Diameter = ptr(0.0)

	_, err := c.Create(context.Background(), in)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.ElementsMatch(t, []string{"weldNumber must not be empty", "diameter must not be less than 1"}, apiErr.Details())
}

func TestClientNotFoundAndTransportErrors(t *testing.T) {
	c := newClient(t)
	err := c.Delete(context.Background(), "missing")
	assert.True(t, client.IsNotFound(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"weld not found"}, apiErr.Details())

	dead := client.NewWeldClient("http://127.0.0.1:1/api", nil)
	_, err = dead.List(context.Background(), client.ListQuery{})
	require.Error(t, err)
	assert.False(t, client.IsNotFound(err))
}
