package suggest

import (
	"encoding/json"
	"fmt"

	"github.com/VisionInno/tidsrapportering/internal/store"
)

func buildSystemPrompt(projects []store.Project) string {
	type projectInfo struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Client string `json:"client,omitempty"`
	}

	var pList []projectInfo
	for _, p := range projects {
		pList = append(pList, projectInfo{ID: p.ID, Name: p.Name, Client: p.Client})
	}

	projectsJSON, _ := json.Marshal(pList)

	return fmt.Sprintf(`You are a time-tracking assistant. Match a work description to one of the user's projects.

Available projects:
%s

Rules:
- Pick the single best matching project and use its exact id and name from the list above
- Set confidence between 0 and 1 based on how well the description matches
- If nothing matches with reasonable confidence, leave project_id empty and explain why in reason

Return valid JSON matching the required schema.`, string(projectsJSON))
}

func buildUserPrompt(description string) string {
	return fmt.Sprintf("What I worked on: %s", description)
}
