package api

import (
	"database/sql"
	"time"

	"github.com/campuslink/campuslink/internal/models"
	"github.com/campuslink/campuslink/internal/service"
)

// Wire representations of domain objects. Nullable profile columns
// flatten to plain strings; picture bytes ride as base64 per
// encoding/json's []byte handling.

type accountView struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Role           string    `json:"role"`
	Summary        string    `json:"summary"`
	Experience     string    `json:"experience"`
	Certifications string    `json:"certifications"`
	Education      string    `json:"education"`
	Research       string    `json:"research"`
	Interests      string    `json:"interests"`
	CreatedAt      time.Time `json:"created_at"`
}

type pictureView struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type sessionView struct {
	Account accountView `json:"account"`
	Token   string      `json:"token"`
	IsAdmin bool        `json:"is_admin"`
}

type profileView struct {
	Account accountView  `json:"account"`
	Picture *pictureView `json:"picture,omitempty"`
}

type postView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type feedItemView struct {
	Post    postView     `json:"post"`
	Author  accountView  `json:"author"`
	Picture *pictureView `json:"picture,omitempty"`
}

type reportedPostView struct {
	ReportID   int64        `json:"report_id"`
	ReporterID int64        `json:"reporter_id"`
	ReportedAt time.Time    `json:"reported_at"`
	Post       postView     `json:"post"`
	Creator    accountView  `json:"creator"`
	Picture    *pictureView `json:"picture,omitempty"`
}

type notificationView struct {
	ID           int64        `json:"id"`
	ActorID      *int64       `json:"actor_id,omitempty"`
	Message      string       `json:"message"`
	CreatedAt    time.Time    `json:"created_at"`
	ActorPicture *pictureView `json:"actor_picture,omitempty"`
}

func nullableString(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func newAccountView(account *models.Account) accountView {
	return accountView{
		ID:             account.ID,
		Email:          account.Email,
		DisplayName:    nullableString(account.DisplayName),
		Role:           nullableString(account.Role),
		Summary:        nullableString(account.Summary),
		Experience:     nullableString(account.Experience),
		Certifications: nullableString(account.Certifications),
		Education:      nullableString(account.Education),
		Research:       nullableString(account.Research),
		Interests:      nullableString(account.Interests),
		CreatedAt:      account.CreatedAt,
	}
}

func newPictureView(picture *service.Picture) *pictureView {
	if picture == nil {
		return nil
	}
	return &pictureView{
		Key:         picture.Key,
		ContentType: picture.ContentType,
		Data:        picture.Data,
	}
}

func newPostView(post *models.Post) postView {
	return postView{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedBy: post.CreatedBy,
		CreatedAt: post.CreatedAt,
	}
}

func newNotificationView(item service.NotificationItem) notificationView {
	view := notificationView{
		ID:           item.Notification.ID,
		Message:      item.Notification.Message,
		CreatedAt:    item.Notification.CreatedAt,
		ActorPicture: newPictureView(item.ActorPicture),
	}
	if item.Notification.ActorID.Valid {
		actorID := item.Notification.ActorID.Int64
		view.ActorID = &actorID
	}
	return view
}
