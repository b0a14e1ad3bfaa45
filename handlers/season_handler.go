package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cricboard/league-system/services"
)

type SeasonHandler struct {
	seasonService  services.SeasonService
	fixtureService services.FixtureService
}

func NewSeasonHandler(seasonService services.SeasonService, fixtureService services.FixtureService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService, fixtureService: fixtureService}
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSeasonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"seasons": seasons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) Get(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.GetByNumber(r.Context(), seasonNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seasonService.SetCurrent(r.Context(), seasonNumber); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "season set as current"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) UpdateScheduleTime(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		ScheduleGenerationTime time.Time `json:"schedule_generation_time"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ScheduleGenerationTime.IsZero() {
		badRequestResponse(w, r, errors.New("schedule_generation_time is required"))
		return
	}

	if err := h.seasonService.UpdateScheduleTime(r.Context(), seasonNumber, input.ScheduleGenerationTime); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "schedule generation time updated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seasonService.Delete(r.Context(), seasonNumber); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateFixtures rebuilds the season's league fixtures from its groups.
func (h *SeasonHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	seasonRef := r.URL.Query().Get("season")
	if seasonRef == "" {
		badRequestResponse(w, r, errors.New("season query parameter is required"))
		return
	}

	count, season, err := h.fixtureService.GenerateLeagueMatches(r.Context(), seasonRef)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{
		"message":         "league fixtures generated",
		"season_number":   season.SeasonNumber,
		"matches_created": count,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatches wipes every match of the season and reports the count.
func (h *SeasonHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deleted, err := h.fixtureService.DeleteSeasonMatches(r.Context(), seasonNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches_deleted": deleted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
