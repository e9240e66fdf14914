package http

import (
	"habitsync/internal/model"
	"habitsync/internal/timeutil"
)

// Wire representations. Every instant-valued field is rendered as epoch
// milliseconds (or null) so all read paths and the sync override set speak
// the same format.

type taskResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Day         timeutil.Instant `json:"day"`
	Daytime     int              `json:"daytime"`
	Notify      bool             `json:"notify"`
	Recurring   string           `json:"recurring,omitempty"`
	CompletedAt timeutil.Instant `json:"completedAt"`
	Deleted     bool             `json:"deleted"`
	CreatedAt   timeutil.Instant `json:"createdAt"`
	UpdatedAt   timeutil.Instant `json:"updatedAt"`
}

func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Day:         timeutil.FromTime(t.Day),
		Daytime:     t.Daytime,
		Notify:      t.Notify,
		Recurring:   t.Recurring,
		CompletedAt: timeutil.FromTime(t.CompletedAt),
		Deleted:     t.Deleted,
		CreatedAt:   timeutil.Instant{Time: t.CreatedAt, Valid: !t.CreatedAt.IsZero()},
		UpdatedAt:   timeutil.Instant{Time: t.UpdatedAt, Valid: !t.UpdatedAt.IsZero()},
	}
}

func toTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

// userResponse deliberately omits the stored password.
type userResponse struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	NotificationTime *int             `json:"notificationtime,omitempty"`
	TelegramChatID   *int64           `json:"telegramChatId,omitempty"`
	CreatedAt        timeutil.Instant `json:"createdAt"`
	UpdatedAt        timeutil.Instant `json:"updatedAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:               u.ID,
		Email:            u.Email,
		NotificationTime: u.NotificationTime,
		TelegramChatID:   u.TelegramChatID,
		CreatedAt:        timeutil.Instant{Time: u.CreatedAt, Valid: !u.CreatedAt.IsZero()},
		UpdatedAt:        timeutil.Instant{Time: u.UpdatedAt, Valid: !u.UpdatedAt.IsZero()},
	}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

type taskLogResponse struct {
	ID          string           `json:"id"`
	TaskID      string           `json:"taskId"`
	UserID      string           `json:"userId"`
	CompletedAt timeutil.Instant `json:"completed_at"`
	CreatedAt   timeutil.Instant `json:"createdAt"`
	UpdatedAt   timeutil.Instant `json:"updatedAt"`
}

func toTaskLogResponse(l model.TaskLog) taskLogResponse {
	return taskLogResponse{
		ID:          l.ID,
		TaskID:      l.TaskID,
		UserID:      l.UserID,
		CompletedAt: timeutil.Instant{Time: l.CompletedAt, Valid: !l.CompletedAt.IsZero()},
		CreatedAt:   timeutil.Instant{Time: l.CreatedAt, Valid: !l.CreatedAt.IsZero()},
		UpdatedAt:   timeutil.Instant{Time: l.UpdatedAt, Valid: !l.UpdatedAt.IsZero()},
	}
}

func toTaskLogResponses(logs []model.TaskLog) []taskLogResponse {
	out := make([]taskLogResponse, len(logs))
	for i, l := range logs {
		out[i] = toTaskLogResponse(l)
	}
	return out
}
