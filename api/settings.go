package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

type weightingDto struct {
	Enabled  bool   `json:"enabled"`
	Rounding string `json:"rounding"`
}

type houseRolesDto struct {
	RoleIDs []sharedtypes.RoleID `json:"role_ids"`
}

type displayDto struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	MessageID sharedtypes.MessageID `json:"message_id"`
}

type channelDto struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
}

type modRoleDto struct {
	RoleID sharedtypes.RoleID `json:"role_id"`
}

type resolveHouseDto struct {
	MemberRoles []sharedtypes.RoleID `json:"member_roles"`
}

type resolvedHouse struct {
	House sharedtypes.HouseKey `json:"house,omitempty"`
	Found bool                 `json:"found"`
}

func (s *Server) settingsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.getSettings)
	r.Put("/weighting", s.setWeighting)
	r.Put("/houses/{house}/roles", s.setHouseRoles)
	r.Put("/display", s.setDisplay)
	r.Put("/log-channel", s.setLogChannel)
	r.Put("/mod-role", s.setModRole)
	r.Post("/resolve-house", s.resolveHouse)
	return r
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.guild.GetSettings(r.Context()))
}

func (s *Server) setWeighting(w http.ResponseWriter, r *http.Request) {
	var input weightingDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.guild.SetWeighting(r.Context(), input.Enabled, input.Rounding)
	writeResult(w, res, err)
}

func (s *Server) setHouseRoles(w http.ResponseWriter, r *http.Request) {
	house := sharedtypes.HouseKey(chi.URLParam(r, "house"))
	var input houseRolesDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.guild.SetHouseRoles(r.Context(), house, input.RoleIDs)
	writeResult(w, res, err)
}

func (s *Server) setDisplay(w http.ResponseWriter, r *http.Request) {
	var input displayDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.guild.SetDisplay(r.Context(), input.ChannelID, input.MessageID)
	writeResult(w, res, err)
}

func (s *Server) setLogChannel(w http.ResponseWriter, r *http.Request) {
	var input channelDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.guild.SetLogChannel(r.Context(), input.ChannelID)
	writeResult(w, res, err)
}

func (s *Server) setModRole(w http.ResponseWriter, r *http.Request) {
	var input modRoleDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.guild.SetModRole(r.Context(), input.RoleID)
	writeResult(w, res, err)
}

func (s *Server) resolveHouse(w http.ResponseWriter, r *http.Request) {
	var input resolveHouseDto
	if !decodeBody(w, r, &input) {
		return
	}
	house, found := s.guild.ResolveHouse(r.Context(), input.MemberRoles)
	respondJSON(w, http.StatusOK, resolvedHouse{House: house, Found: found})
}
