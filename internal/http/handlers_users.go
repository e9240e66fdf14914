package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"habitsync/internal/model"
)

type userPayload struct {
	ID               string  `json:"id"`
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	NotificationTime *int    `json:"notificationtime"`
	TelegramChatID   *int64  `json:"telegramChatId"`
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if p.ID == "" || p.Email == nil || *p.Email == "" {
		badRequest(w, "id and email are required")
		return
	}

	user := model.User{
		ID:               p.ID,
		Email:            *p.Email,
		NotificationTime: p.NotificationTime,
		TelegramChatID:   p.TelegramChatID,
	}
	if p.Password != nil {
		user.Password = *p.Password
	}

	if err := h.users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "Email already exists"})
			return
		}
		h.respondError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		h.respondError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

// UpdateUser handles PUT /users/{id}. Only fields present in the body are
// changed.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if p.Email != nil {
		if *p.Email == "" {
			badRequest(w, "email must not be empty")
			return
		}
		updates["email"] = *p.Email
	}
	if p.Password != nil {
		updates["password"] = *p.Password
	}
	if p.NotificationTime != nil {
		updates["notification_time"] = *p.NotificationTime
	}
	if p.TelegramChatID != nil {
		updates["telegram_chat_id"] = *p.TelegramChatID
	}
	if len(updates) == 0 {
		badRequest(w, "no fields to update")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "Email already exists"})
			return
		}
		h.respondError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

// DeleteUser handles DELETE /users/{id}; the user's tasks and task logs go
// with it.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
