package http

import (
	"net/http"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/service"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
	appSvc     service.ApplicationService
}

func NewProjectHandler(projectSvc service.ProjectService, appSvc service.ApplicationService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, appSvc: appSvc}
}

type createProjectRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Details        string   `json:"details"`
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int32    `json:"team_size"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var body createProjectRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	project := &domain.Project{
		Title:          body.Title,
		Description:    body.Description,
		Details:        body.Details,
		RequiredSkills: body.RequiredSkills,
		TeamSize:       body.TeamSize,
	}
	if err := h.projectSvc.CreateProject(r.Context(), userID, project); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "project": project})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectSvc.ListOpenProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "projects": projects})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	project, members, err := h.projectSvc.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "project": project, "members": members})
}

type updateProjectRequest struct {
	domain.ProjectPatch
	ExpectedVersion int32 `json:"expected_version"`
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body updateProjectRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projectSvc.UpdateProject(r.Context(), id, userID, body.ProjectPatch, body.ExpectedVersion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "project": project})
}

type setStatusRequest struct {
	Status domain.ProjectStatus `json:"status"`
}

func (h *ProjectHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body setStatusRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.projectSvc.SetProjectStatus(r.Context(), id, userID, body.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.projectSvc.DeleteProject(r.Context(), id, userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type applyRequest struct {
	Sop string `json:"sop"`
}

func (h *ProjectHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body applyRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.appSvc.SubmitApplication(r.Context(), id, userID, body.Sop)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "request": req})
}

func (h *ProjectHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	reqs, err := h.appSvc.ListProjectRequests(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "requests": reqs})
}
