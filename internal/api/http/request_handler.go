package http

import (
	"net/http"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/service"
)

type RequestHandler struct {
	appSvc      service.ApplicationService
	decisionSvc service.DecisionService
	sopSvc      service.SopEditService
}

func NewRequestHandler(appSvc service.ApplicationService, decisionSvc service.DecisionService, sopSvc service.SopEditService) *RequestHandler {
	return &RequestHandler{appSvc: appSvc, decisionSvc: decisionSvc, sopSvc: sopSvc}
}

func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	reqs, err := h.appSvc.ListMyRequests(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "requests": reqs})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.appSvc.GetRequest(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "request": req})
}

type decideRequest struct {
	Decision domain.JoinRequestStatus `json:"decision"`
	Message  string                   `json:"message"`
}

func (h *RequestHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body decideRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.decisionSvc.Decide(r.Context(), id, userID, body.Decision, body.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "request": req})
}

type editSopRequest struct {
	Sop             string `json:"sop"`
	ExpectedVersion int32  `json:"expected_version"`
}

func (h *RequestHandler) EditSop(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body editSopRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.sopSvc.EditSop(r.Context(), id, userID, body.Sop, body.ExpectedVersion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "request": req})
}
