package cmd

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
)

const roadmapProfileJSON = `{
	"id": "p1",
	"user_id": "u1",
	"full_name": "Dev Eloper",
	"email": "dev@example.com",
	"target_role": "Senior Go Developer",
	"experience_level": "Mid-Level",
	"ai_analysis_json": {
		"match_score": 62,
		"executive_summary": "Solid foundation.",
		"skill_breakdown": [],
		"missing_skills": [],
		"roadmap": [
			{
				"phase": "Phase 1: Foundations",
				"week": "Week 1-2",
				"topics": [],
				"action_items": [
					{"task": "Read the memory model", "completed": false},
					{"task": "Write a worker pool", "completed": true}
				]
			}
		]
	}
}`

// roadmapHandler serves the profile and either accepts or rejects toggle
// confirmations.
func roadmapHandler(acceptToggle bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/profile/me":
			io.WriteString(w, roadmapProfileJSON)
		case r.Method == http.MethodPatch && r.URL.Path == "/profile/roadmap/toggle":
			if !acceptToggle {
				http.Error(w, `{"detail": "toggle rejected"}`, http.StatusInternalServerError)
				return
			}
			io.WriteString(w, `{"status": "success"}`)
		default:
			http.NotFound(w, r)
		}
	})
}

func TestRoadmapToggle(t *testing.T) {
	setup := &TestSetup{}

	setup.RunTests(t, []TestScenario{
		{
			Name:       "success - checking a task celebrates",
			Command:    []string{"roadmap", "toggle", "1", "1"},
			Credential: "token",
			Handler:    roadmapHandler(true),
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("%s %s Done: Read the memory model\n", terminal.SuccessSymbol, terminal.CelebrationSymbol),
			},
		},
		{
			Name:       "success - unchecking a task does not celebrate",
			Command:    []string{"roadmap", "toggle", "1", "2"},
			Credential: "token",
			Handler:    roadmapHandler(true),
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("%s Unchecked: Write a worker pool\n", terminal.SuccessSymbol),
			},
		},
		{
			Name:       "rejected - roadmap restored from the server",
			Command:    []string{"roadmap", "toggle", "1", "1"},
			Credential: "token",
			Handler:    roadmapHandler(false),
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("%s The service rejected the change; your roadmap was restored.\n", terminal.SmallErrorSymbol),
			},
		},
		{
			Name:       "error - item out of range",
			Command:    []string{"roadmap", "toggle", "1", "9"},
			Credential: "token",
			Handler:    roadmapHandler(true),
			Expected: TestExpectation{
				Error: "no roadmap item at phase 0, item 8",
			},
		},
		{
			Name:       "error - phase is not a number",
			Command:    []string{"roadmap", "toggle", "one", "1"},
			Credential: "token",
			Handler:    roadmapHandler(true),
			Expected: TestExpectation{
				Error: `phase must be a number, got "one"`,
			},
		},
		{
			Name:    "error - not logged in",
			Command: []string{"roadmap", "toggle", "1", "1"},
			Expected: TestExpectation{
				Error: "you are not logged in\n\nRun 'ascent login' to sign in, or 'ascent signup' to create an account",
			},
		},
	})
}
