package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VisionInno/tidsrapportering/internal/store"
)

func TestBuildSystemPrompt(t *testing.T) {
	projects := []store.Project{
		{ID: "p1", Name: "Website", Client: "Acme"},
		{ID: "p2", Name: "App"},
	}

	prompt := buildSystemPrompt(projects)

	assert.Contains(t, prompt, `"id":"p1"`)
	assert.Contains(t, prompt, `"name":"Website"`)
	assert.Contains(t, prompt, `"client":"Acme"`)
	assert.Contains(t, prompt, `"id":"p2"`)
	assert.NotContains(t, prompt, `"client":""`, "empty client should be omitted")
}

func TestBuildUserPrompt(t *testing.T) {
	assert.Equal(t, "What I worked on: fixed the login bug", buildUserPrompt("fixed the login bug"))
}
