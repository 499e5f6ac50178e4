package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routeColumns = []string{"id", "campus", "name", "stop_codes", "active"}

func TestCreateRoute(t *testing.T) {
	a, mock, _, _ := newTestAPI(t)

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO routes").
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(id.String(), "Tesano", "Campus Loop", `["TSN-01","TSN-02","TSN-03"]`, true))

	w := doPOST(t, a, "/routes", gin.H{
		"campus":     "Tesano",
		"name":       "Campus Loop",
		"stop_codes": []string{"TSN-01", "TSN-02", "TSN-03"},
	})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp["id"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRouteValidation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "missing stop codes",
			body: gin.H{"campus": "Tesano", "name": "Campus Loop"},
		},
		{
			name: "empty stop codes",
			body: gin.H{"campus": "Tesano", "name": "Campus Loop", "stop_codes": []string{}},
		},
		{
			name: "missing name",
			body: gin.H{"campus": "Tesano", "stop_codes": []string{"TSN-01"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _, _ := newTestAPI(t)

			w := doPOST(t, a, "/routes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp["code"])
		})
	}
}

func TestListRoutes(t *testing.T) {
	a, mock, _, _ := newTestAPI(t)

	mock.ExpectQuery(`SELECT \* FROM routes WHERE campus = \$1`).
		WithArgs("Tesano").
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(uuid.New().String(), "Tesano", "Campus Loop", `["TSN-01","TSN-02"]`, true))

	w := doGET(a, "/routes?campus=Tesano")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []routeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Campus Loop", resp[0].Name)
	assert.Equal(t, []string{"TSN-01", "TSN-02"}, resp[0].StopCodes)

	require.NoError(t, mock.ExpectationsWereMet())
}
