package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/playbill/internal/core"
	"github.com/agenthands/playbill/internal/driver"
)

func setup(m *driver.MockDriver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	a := core.NewArchive(m, nil, nil, 2, 10)
	a.UUIDGenerator = func() string { return "new-uuid" }
	return NewServer(a, nil).SetupRouter()
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := setup((&driver.MockDriver{}).On("RETURN 1 AS ok", map[string]interface{}{"ok": 1}))
	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	r = setup((&driver.MockDriver{}).Fail("RETURN 1", errors.New("down")))
	w = do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateInvalidReturns400WithErrors(t *testing.T) {
	m := &driver.MockDriver{}
	r := setup(m)

	w := do(r, http.MethodPost, "/materials", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := body(t, w)
	assert.Equal(t, true, out["hasErrors"])
	assert.Equal(t, map[string]interface{}{"name": []interface{}{"Value is too short"}}, out["errors"])
	assert.Zero(t, m.WriteCount())
}

func TestCreateMalformed(t *testing.T) {
	r := setup(&driver.MockDriver{})
	w := do(r, http.MethodPost, "/productions", `{"cast": "not a list"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["error"], "malformed")
}

func TestCreatePersisted(t *testing.T) {
	m := (&driver.MockDriver{}).On("MATCH (n:Company {uuid: $uuid})\nOPTIONAL", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "new-uuid", "name": "Acme"},
	})
	r := setup(m)

	w := do(r, http.MethodPost, "/companies", `{"name": "Acme"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	out := body(t, w)
	assert.Equal(t, false, out["hasErrors"])
	assert.Equal(t, "new-uuid", out["uuid"])
	assert.Equal(t, 1, m.WriteCount())
}

func TestShowNotFound(t *testing.T) {
	r := setup(&driver.MockDriver{})
	w := do(r, http.MethodGet, "/award-ceremonies/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShowStoreFailure(t *testing.T) {
	r := setup((&driver.MockDriver{}).Fail("MATCH (venue:Venue", errors.New("boom")))
	w := do(r, http.MethodGet, "/venues/v1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestShowAndList(t *testing.T) {
	m := (&driver.MockDriver{}).
		On("MATCH (award:Award {uuid: $uuid})", map[string]interface{}{
			"node": map[string]interface{}{"uuid": "a1", "name": "Olivier"},
		}).
		On("MATCH (n:Award)\nRETURN", map[string]interface{}{
			"item": map[string]interface{}{"kind": "Award", "uuid": "a1", "name": "Olivier"},
		})
	r := setup(m)

	w := do(r, http.MethodGet, "/awards/a1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Olivier", body(t, w)["name"])

	w = do(r, http.MethodGet, "/awards", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0]["uuid"])
}

func TestDeleteBlocked(t *testing.T) {
	m := (&driver.MockDriver{}).
		On("MATCH (character:Character {uuid: $uuid})", map[string]interface{}{
			"node": map[string]interface{}{"uuid": "c1", "name": "Hamlet"},
		}).
		On("<-[]-(m)", map[string]interface{}{"labels": []interface{}{"Material"}})
	r := setup(m)

	w := do(r, http.MethodDelete, "/characters/c1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := body(t, w)
	assert.Equal(t, map[string]interface{}{"associations": []interface{}{"Material"}}, out["errors"])
	assert.Zero(t, m.WriteCount())
}

func TestEditForm(t *testing.T) {
	m := (&driver.MockDriver{}).On("MATCH (venue:Venue {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "v1", "name": "National Theatre"},
		"subVenues": []interface{}{
			map[string]interface{}{"kind": "Venue", "uuid": "v2", "name": "Olivier Theatre", "position": 0},
		},
	})
	r := setup(m)

	w := do(r, http.MethodGet, "/venues/v1/edit", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := body(t, w)
	subs := out["subVenues"].([]interface{})
	require.Len(t, subs, 1)
	assert.Equal(t, "Olivier Theatre", subs[0].(map[string]interface{})["name"])
}
