package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/services"
)

const maxLogoSize = 5 << 20 // 5MB

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Register accepts a multipart form: season_number, name, repeated
// player_names fields and an optional logo file.
func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data"))
		return
	}

	seasonNumber, err := strconv.Atoi(r.FormValue("season_number"))
	if err != nil || seasonNumber <= 0 {
		badRequestResponse(w, r, errors.New("season_number is required"))
		return
	}

	input := services.RegisterTeamInput{
		SeasonNumber: seasonNumber,
		Name:         r.FormValue("name"),
		PlayerNames:  r.MultipartForm.Value["player_names"],
	}

	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		input.Logo = &services.LogoUpload{
			Reader:      file,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	team, err := h.teamService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListBySeason returns the season's teams, optionally filtered by ?status=.
func (h *TeamHandler) ListBySeason(w http.ResponseWriter, r *http.Request) {
	seasonNumber, err := getIDFromURL(r, "seasonNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var status *models.TeamStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.TeamStatus(raw)
		status = &s
	}

	teams, err := h.teamService.ListSeasonTeams(r.Context(), seasonNumber, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BindPlayer attaches a verified player's code to one roster slot.
func (h *TeamHandler) BindPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	slotNo, err := getIDFromURL(r, "slotNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerCode string `json:"player_code"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.BindRosterSlot(r.Context(), teamID, slotNo, input.PlayerCode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.teamService.Approve)
}

func (h *TeamHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.teamService.Reject)
}

func (h *TeamHandler) review(w http.ResponseWriter, r *http.Request, action func(context.Context, int) (*models.Team, error)) {
	id, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := action(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
