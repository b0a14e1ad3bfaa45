package handlers

import (
	"net/http"

	"github.com/cricboard/league-system/services"
)

type ScheduleHandler struct {
	scheduleService  services.ScheduleService
	standingsService services.StandingsService
}

func NewScheduleHandler(scheduleService services.ScheduleService, standingsService services.StandingsService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, standingsService: standingsService}
}

// GenerateGroups partitions the season's approved teams into fresh groups,
// replacing any prior schedule and matches.
func (h *ScheduleHandler) GenerateGroups(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, season, err := h.scheduleService.GenerateGroups(r.Context(), seasonNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{
		"schedule": schedule,
		"season":   season,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) DeleteGroups(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteGroups(r.Context(), seasonNumber); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) GetSeasonSchedule(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.GetSeasonSchedule(r.Context(), seasonNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLatestSchedule returns the most recently generated schedule across all
// seasons, for the landing page.
func (h *ScheduleHandler) GetLatestSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.scheduleService.GetLatestSchedule(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) GetPointsTable(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	table, err := h.standingsService.PointsTable(r.Context(), seasonNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"points_table": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
