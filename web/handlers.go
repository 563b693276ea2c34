package web

import (
	"net/http"
	"sort"

	"github.com/dsimpson1980/yff/controller"
	"github.com/dsimpson1980/yff/model"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

func dashboardHandler(teams []*model.Team, week int, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"week":  week,
			"teams": teams,
		}
		render.HTML(w, http.StatusOK, "dashboard", data)
	}
}

func playerScoresHandler(ctrl controller.C, teams []*model.Team, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")

		player := findPlayer(teams, playerID)
		if player == nil {
			render.HTML(w, http.StatusNotFound, "404", "player not found")
			return
		}

		scores, err := ctrl.GetPlayerScores(r.Context(), playerID)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data := map[string]any{
			"player": player,
			"scores": scores,
		}
		render.HTML(w, http.StatusOK, "scores", data)
	}
}

// pointsCell is one row of the live points feed the dashboard polls.
type pointsCell struct {
	TeamKey     string  `json:"team_key"`
	PlayerID    string  `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Points      float64 `json:"points"`
	Highlighted bool    `json:"highlighted"`
}

func pointsHandler(teams []*model.Team, tracker *HighlightTracker, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cells := make([]pointsCell, 0, 16*len(teams))
		for _, team := range teams {
			for _, p := range team.Players {
				cell := pointsCell{
					TeamKey:     team.Key,
					PlayerID:    p.ID,
					Name:        p.Initial(),
					Position:    string(p.SelectedPosition),
					Highlighted: tracker.IsHighlighted(p.ID),
				}
				if p.PlayerPoints != nil {
					cell.Points = *p.PlayerPoints
				}
				cells = append(cells, cell)
			}
		}
		render.JSON(w, http.StatusOK, cells)
	}
}

func highlightsHandler(tracker *HighlightTracker, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, tracker.Active())
	}
}

func categoriesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := ctrl.StatCatalog()
		if catalog == nil {
			render.JSON(w, http.StatusServiceUnavailable, map[string]string{"error": "stat categories not loaded yet"})
			return
		}

		categories := catalog.Categories()
		sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
		render.JSON(w, http.StatusOK, categories)
	}
}

func findPlayer(teams []*model.Team, playerID string) *model.Player {
	for _, team := range teams {
		if p := team.FindPlayer(playerID); p != nil {
			return p
		}
	}
	return nil
}
