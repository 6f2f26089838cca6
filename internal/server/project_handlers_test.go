package server

import (
	"net/http"
	"testing"

	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, body := env.do(t, http.MethodPost, "/projects", map[string]string{
		"title":       "Folio",
		"description": "This site",
		"url":         "https://folio.example.com",
		"repoUrl":     "",
	}, token)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[models.Project](t, body)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.URL)
	assert.Nil(t, created.RepoURL)

	status, body = env.do(t, http.MethodGet, "/projects", nil, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]models.Project](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Folio", list[0].Title)

	status, body = env.do(t, http.MethodGet, "/projects/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, decode[models.Project](t, body).ID)

	status, body = env.do(t, http.MethodPatch, "/projects/"+created.ID, map[string]string{
		"title": "Folio v2",
	}, token)
	require.Equal(t, http.StatusOK, status, string(body))
	updated := decode[models.Project](t, body)
	assert.Equal(t, "Folio v2", updated.Title)
	assert.Equal(t, "This site", updated.Description)
	require.NotNil(t, updated.URL)
	assert.Equal(t, "https://folio.example.com", *updated.URL)

	status, _ = env.do(t, http.MethodDelete, "/projects/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/projects/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProject_EmptyURLClearsColumn(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, body := env.do(t, http.MethodPost, "/projects", map[string]string{
		"title":       "Folio",
		"description": "This site",
		"url":         "https://folio.example.com",
	}, token)
	require.Equal(t, http.StatusCreated, status)
	created := decode[models.Project](t, body)

	status, body = env.do(t, http.MethodPatch, "/projects/"+created.ID, map[string]string{"url": ""}, token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Nil(t, decode[models.Project](t, body).URL)
	assert.Contains(t, string(body), `"url":null`)

	var stored models.Project
	require.NoError(t, env.db.First(&stored, "id = ?", created.ID).Error)
	assert.Nil(t, stored.URL)
	assert.Equal(t, "Folio", stored.Title)
}

func TestProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, body := env.do(t, http.MethodPost, "/projects", map[string]string{
		"title":       "Folio",
		"description": "This site",
	}, token)
	require.Equal(t, http.StatusCreated, status)
	created := decode[models.Project](t, body)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		field  string
	}{
		{"missing title", http.MethodPost, "/projects", map[string]string{"description": "d"}, "title"},
		{"missing description", http.MethodPost, "/projects", map[string]string{"title": "t"}, "description"},
		{"blank title", http.MethodPost, "/projects", map[string]string{"title": "   ", "description": "d"}, "title"},
		{"blank description", http.MethodPost, "/projects", map[string]string{"title": "t", "description": "\t\n"}, "description"},
		{"bad url", http.MethodPost, "/projects", map[string]string{"title": "t", "description": "d", "url": "ftp://x"}, "url"},
		{"empty title on patch", http.MethodPatch, "/projects/" + created.ID, map[string]string{"title": ""}, "title"},
		{"blank title on patch", http.MethodPatch, "/projects/" + created.ID, map[string]string{"title": "  "}, "title"},
		{"bad image on patch", http.MethodPatch, "/projects/" + created.ID, map[string]string{"image": "not a url"}, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, tt.method, tt.path, tt.body, token)
			assert.Equal(t, http.StatusBadRequest, status)
			res := errorOf(t, body)
			assert.Equal(t, models.CodeValidation, res.Code)
			assert.Contains(t, res.Details, tt.field)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Project
	require.NoError(t, env.db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Folio", stored.Title)
}

func TestProjectNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, body := env.do(t, http.MethodGet, "/projects/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errorOf(t, body).Code)

	status, _ = env.do(t, http.MethodPatch, "/projects/missing", map[string]string{"title": "x"}, token)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/projects/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
}
