package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

type announcementRequest struct {
	Title    string                  `json:"title"`
	Message  string                  `json:"message"`
	Type     domain.AnnouncementType `json:"type"`
	IsActive bool                    `json:"isActive"`
}

func newAnnouncementRequest(a *domain.Announcement) announcementRequest {
	return announcementRequest{
		Title:    a.Title,
		Message:  a.Message,
		Type:     a.Type,
		IsActive: a.IsActive,
	}
}

// Announcements lists every announcement, active or not
func (c *Client) Announcements(ctx context.Context, token string) ([]domain.Announcement, error) {
	raw, err := c.do(ctx, http.MethodGet, "/announcements", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Announcement](raw, "announcements")
}

// CreateAnnouncement creates an announcement and returns the stored record
func (c *Client) CreateAnnouncement(ctx context.Context, token string, a *domain.Announcement) (*domain.Announcement, error) {
	raw, err := c.do(ctx, http.MethodPost, "/announcements", token, nil, newAnnouncementRequest(a))
	if err != nil {
		return nil, err
	}
	return decodeAnnouncement(raw, a)
}

// UpdateAnnouncement replaces the announcement with id
func (c *Client) UpdateAnnouncement(ctx context.Context, token string, id int64, a *domain.Announcement) (*domain.Announcement, error) {
	raw, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/announcements/%d", id), token, nil, newAnnouncementRequest(a))
	if err != nil {
		return nil, err
	}

	out, err := decodeAnnouncement(raw, a)
	if err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return out, nil
}

// DeleteAnnouncement removes the announcement with id
func (c *Client) DeleteAnnouncement(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/announcements/%d", id), token, nil, nil)
	return err
}

// decodeAnnouncement reads the stored record, falling back to what was sent
// when the server answers with a bare acknowledgement
func decodeAnnouncement(raw []byte, sent *domain.Announcement) (*domain.Announcement, error) {
	var out domain.Announcement
	if err := decodeObject(raw, &out, "id", "announcement"); err != nil {
		return nil, err
	}
	if out.ID == 0 && out.Title == "" {
		fallback := *sent
		return &fallback, nil
	}
	return &out, nil
}
