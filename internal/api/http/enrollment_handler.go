package http

import (
	"net/http"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/service"
)

type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

type enrollRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	offeringID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req enrollRequest
	if !decodeBody(w, r, &req) {
		return
	}

	caller := PrincipalFromContext(r.Context())
	identity := domain.EnrollmentIdentity{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	// Authenticated members enroll as themselves.
	if !caller.IsAnonymous() {
		if identity.Email == "" {
			identity.Email = caller.Email
		}
	}

	enr, err := h.enrollSvc.Enroll(r.Context(), caller, offeringID, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, enr)
}

func (h *EnrollmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enr, err := h.enrollSvc.Cancel(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enr)
}

func (h *EnrollmentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enr, err := h.enrollSvc.MarkPaid(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enr)
}

type offeringResponse struct {
	*domain.Offering
	SeatsLeft *int32 `json:"seats_left"`
}

func (h *EnrollmentHandler) GetOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	off, seats, err := h.enrollSvc.GetOffering(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offeringResponse{Offering: off, SeatsLeft: seats})
}

func (h *EnrollmentHandler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	offs, err := h.enrollSvc.ListOfferings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offerings": offs})
}

type createOfferingRequest struct {
	Title                string  `json:"title"`
	Format               string  `json:"format"`
	MaxStudents          *int32  `json:"max_students"`
	StartDate            string  `json:"start_date"`
	RegistrationDeadline *string `json:"registration_deadline"`
	PriceMemberCents     int32   `json:"price_member_cents"`
	PriceNonMemberCents  int32   `json:"price_non_member_cents"`
	PriceJovenCents      int32   `json:"price_joven_cents"`
	PriceGratuitoCents   int32   `json:"price_gratuito_cents"`
}

func (h *EnrollmentHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var req createOfferingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	off := &domain.Offering{
		Title:                req.Title,
		Format:               domain.OfferingFormat(req.Format),
		MaxStudents:          req.MaxStudents,
		StartDate:            req.StartDate,
		RegistrationDeadline: req.RegistrationDeadline,
		PriceMemberCents:     req.PriceMemberCents,
		PriceNonMemberCents:  req.PriceNonMemberCents,
		PriceJovenCents:      req.PriceJovenCents,
		PriceGratuitoCents:   req.PriceGratuitoCents,
	}
	if err := h.enrollSvc.CreateOffering(r.Context(), PrincipalFromContext(r.Context()), off); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, off)
}
