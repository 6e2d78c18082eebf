package web

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-anon-relay/internal/infra/logging"
)

// handleUpdate decodes the webhook envelope and hands it to the router. A
// body that fails to decode is accepted with 200: the platform does not act
// on rejections and would only redeliver forever.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var upd tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		logging.With(ctx, s.log).Info().Err(err).Msg("undecodable update payload, accepting as no-op")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := s.relay.HandleUpdate(ctx, upd); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Int("update_id", upd.UpdateID).Msg("update routing failed")
		http.Error(w, "update routing failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
