package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

type messageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// profileResponse carries the picture as base64 (encoding/json []byte), or
// null when none is stored.
type profileResponse struct {
	UserID         string `json:"user_id"`
	FirstName      string `json:"first_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProfilePicture []byte `json:"profile_picture"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	}

	req, err := s.readRegistration(r)
	if err != nil {
		s.logger.Warn(ctx, "bad registration form", "error", err)
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid form data"})
		return
	}

	s.logger.Info(ctx, "Registration request", "email", req.Email)
	s.logger.Debug(ctx, "Registration form", "full_name", req.FullName, "phone", req.Phone, "picture_bytes", len(req.Picture))

	id, err := s.users.Register(ctx, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", id)
	writeJSON(w, http.StatusOK, messageResponse{Message: "User registered successfully", UserID: id})
}

func (s *HTTPServer) readRegistration(r *http.Request) (services.RegisterRequest, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return services.RegisterRequest{}, err
	}

	req := services.RegisterRequest{
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Phone:    r.FormValue("phone"),
	}

	file, _, err := r.FormFile("profile_picture")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, nil
	case err != nil:
		return req, err
	}
	defer file.Close()

	req.Picture, err = io.ReadAll(file)
	if err != nil {
		return req, err
	}
	return req, nil
}

func (s *HTTPServer) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "user_id")

	profile, err := s.users.Lookup(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		UserID:         profile.UserID,
		FirstName:      profile.FirstName,
		Email:          profile.Email,
		Phone:          profile.Phone,
		ProfilePicture: profile.Picture,
	})
}

// writeError maps workflow errors to a status code and a single message.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Email already exists"})
	case errors.Is(err, common.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid full name"})
	case errors.Is(err, common.ErrInvalidPassword):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid password"})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "User not found"})
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(r.Context(), "store failure", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Service unavailable"})
	default:
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
