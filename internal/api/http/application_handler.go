package http

import (
	"net/http"
	"strconv"

	"asociacion-backend/internal/service"

	"github.com/gorilla/mux"
)

type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

type submitApplicationRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Specialization string `json:"specialization"`
	ExperienceYrs  int32  `json:"experience_years"`
	Motivation     string `json:"motivation"`
	AcademicInfo   string `json:"academic_info"`
	ProfessionInfo string `json:"profession_info"`
	DocumentURL    string `json:"document_url"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.appSvc.Submit(r.Context(), service.ApplicationSubmission{
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Specialization: req.Specialization,
		ExperienceYrs:  req.ExperienceYrs,
		Motivation:     req.Motivation,
		AcademicInfo:   req.AcademicInfo,
		ProfessionInfo: req.ProfessionInfo,
		DocumentURL:    req.DocumentURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"id": id})
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appSvc.List(r.Context(), PrincipalFromContext(r.Context()), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	app, err := h.appSvc.Get(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type decisionRequest struct {
	MembershipType string `json:"membership_type"`
	Note           string `json:"note"`
}

func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req decisionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.appSvc.Approve(r.Context(), PrincipalFromContext(r.Context()), id, req.MembershipType, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req decisionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.appSvc.Reject(r.Context(), PrincipalFromContext(r.Context()), id, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// ConfirmPayment returns the issued credentials. This is the only
// place the initial password ever appears; it cannot be fetched again.
func (h *ApplicationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	creds, err := h.appSvc.ConfirmPayment(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		writeErrorCode(w, http.StatusBadRequest, "validation_error", "invalid id in path")
		return 0, false
	}
	return int32(id), true
}
