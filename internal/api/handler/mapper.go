package handler

import (
	"errors"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// --- Request → domain input ---

func toRegisterData(req registerRequest) domain.RegisterData {
	return domain.RegisterData{
		Credentials: domain.Credentials{Email: req.Email, Password: req.Password},
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}
}

func toCustomerCreate(req createCustomerRequest) domain.CustomerCreate {
	return domain.CustomerCreate{
		Name:          req.Name,
		Email:         req.Email,
		Status:        domain.CustomerStatus(req.Status),
		Notes:         req.Notes,
		ContactNumber: req.ContactNumber,
		Company:       req.Company,
	}
}

func toCustomerUpdate(id string, req updateCustomerRequest) domain.CustomerUpdate {
	in := domain.CustomerUpdate{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Notes:         req.Notes,
		ContactNumber: req.ContactNumber,
		Company:       req.Company,
	}
	if req.Status != nil {
		s := domain.CustomerStatus(*req.Status)
		in.Status = &s
	}
	return in
}

// --- Domain → response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		User:            toUserResponse(s.User),
		Token:           s.Token,
		IsAuthenticated: s.IsAuthenticated,
		IsLoading:       s.IsLoading,
		Error:           s.Error,
	}
}

func toRouteResponse(r domain.Route) routeResponse {
	return routeResponse{
		Name:          r.Name,
		Path:          r.Path,
		Title:         r.Title,
		DocumentTitle: r.DocumentTitle(),
		RequiresAuth:  r.RequiresAuth,
	}
}

// resultLabel turns an operation error into a low-cardinality metric label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateCustomerEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate_username"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrCustomerNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "invalid_status"
	default:
		return "error"
	}
}
