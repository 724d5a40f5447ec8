package backend

import (
	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

func sessionFromAPI(s *api.Session) *models.Session {
	if s == nil || s.AccessToken == "" {
		return nil
	}

	out := &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
	if s.ExpiresAt != nil {
		out.ExpiresAt = s.ExpiresAt.AsTime()
	}
	if s.User != nil {
		out.User = &models.User{ID: s.User.Id, Email: s.User.Email}
	}

	fillFromToken(out)
	return out
}

// fillFromToken completes a session lacking the user or the expiry from the
// access token claims. Opaque tokens are left alone.
func fillFromToken(s *models.Session) {
	if s.User != nil && !s.ExpiresAt.IsZero() {
		return
	}

	user, exp, err := models.UserFromAccessToken(s.AccessToken)
	if err != nil {
		return
	}
	if s.User == nil {
		s.User = user
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = exp
	}
}

func noteFromAPI(n *api.Note) models.Note {
	out := models.Note{
		ID:      n.Id,
		UserID:  n.UserId,
		Title:   n.Title,
		Content: n.Content,
	}
	if n.CreatedAt != nil {
		out.CreatedAt = n.CreatedAt.AsTime()
	}
	if n.UpdatedAt != nil {
		out.UpdatedAt = n.UpdatedAt.AsTime()
	}
	return out
}
