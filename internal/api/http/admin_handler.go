package http

import (
	"net/http"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

type createMemberRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	MembershipType string `json:"membership_type"`
	PaymentStatus  string `json:"payment_status"`
}

func (h *AdminHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	member := &domain.User{
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Role:           domain.UserRole(req.Role),
		MembershipType: domain.MembershipType(req.MembershipType),
		PaymentStatus:  domain.UserPaymentStatus(req.PaymentStatus),
	}
	if err := h.adminSvc.CreateMember(r.Context(), PrincipalFromContext(r.Context()), member, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.adminSvc.ListMembers(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *AdminHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	member, err := h.adminSvc.GetMember(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *AdminHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminSvc.DeactivateMember(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": false})
}
