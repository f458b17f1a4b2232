package controller

import (
	"net/http"
	"testing"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRoutes_CreateUpdateSearch(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, entity.RoleCashier, http.MethodPost, "/api/v1/customers", map[string]string{
		"name":    "João Silva",
		"email":   "joao@email.com",
		"phone":   "+258 84 123 4567",
		"address": "Maputo, Moçambique",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	customerID := created["id"].(string)
	assert.Equal(t, "Maputo, Moçambique", created["address"])

	rec = s.do(t, entity.RoleAdmin, http.MethodPost, "/api/v1/customers", map[string]string{"name": "Maria Santos"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, hasEmail := decode(t, rec)["email"]
	assert.False(t, hasEmail, "empty contact fields are omitted")

	rec = s.do(t, entity.RoleCashier, http.MethodGet, "/api/v1/customers?q=JOAO@", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["total_count"])

	rec = s.do(t, entity.RoleCashier, http.MethodGet, "/api/v1/customers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total_count"])

	rec = s.do(t, entity.RoleCashier, http.MethodPut, "/api/v1/customers/"+customerID, map[string]string{
		"name":  "João M. Silva",
		"phone": "+258 84 000 0000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "João M. Silva", updated["name"])
	_, hasAddress := updated["address"]
	assert.False(t, hasAddress, "update replaces every field")

	rec = s.do(t, entity.RoleCashier, http.MethodGet, "/api/v1/customers?q=84%20000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total_count"])
}

func TestCustomerRoutes_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, entity.RoleViewer, http.MethodPost, "/api/v1/customers", map[string]string{"name": "Carlos Lima"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, entity.RoleViewer, http.MethodGet, "/api/v1/customers", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, entity.RoleCashier, http.MethodPost, "/api/v1/customers", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, entity.ErrCustomerNameRequired.Error(), decode(t, rec)["details"])

	rec = s.do(t, entity.RoleCashier, http.MethodPost, "/api/v1/customers",
		map[string]string{"name": "Carlos Lima", "email": "não-é-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, entity.RoleCashier, http.MethodPut, "/api/v1/customers/"+uuid.New().String(),
		map[string]string{"name": "Ana Costa"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, entity.RoleCashier, http.MethodPut, "/api/v1/customers/123", map[string]string{"name": "Ana Costa"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, entity.RoleViewer, http.MethodPut, "/api/v1/customers/"+uuid.New().String(),
		map[string]string{"name": "Ana Costa"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
