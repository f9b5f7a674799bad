package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"

	"github.com/mortenhouring/guess-the-steeler/controller"
	"github.com/mortenhouring/guess-the-steeler/quiz"
)

type errorResponse struct {
	Error string `json:"error"`
}

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"service": "guess-the-steeler"})
	}
}

func rosterHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = quiz.ModeCurrent
		}

		players, err := ctrl.Roster(r.Context(), mode)
		if err != nil {
			if errors.Is(err, controller.ErrUnknownMode) {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			render.JSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, players)
	}
}

func leaderboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := ctrl.Leaderboard()
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, entries)
	}
}

func startSessionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type request struct {
		Mode string `json:"mode"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if req.Mode == "" {
			req.Mode = quiz.ModeCurrent
		}

		info, err := ctrl.StartSession(r.Context(), req.Mode)
		if err != nil {
			if errors.Is(err, controller.ErrUnknownMode) {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			render.JSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusCreated, info)
	}
}

func nextQuestionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		q, err := ctrl.NextQuestion(sessionID)
		if err != nil {
			if errors.Is(err, controller.ErrSessionNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
				return
			}
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		if q == nil {
			// Roster exhausted: no more questions in this session.
			render.JSON(w, http.StatusOK, map[string]bool{"exhausted": true})
			return
		}

		render.JSON(w, http.StatusOK, q)
	}
}

func submitAnswerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type request struct {
		Answer string `json:"answer"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		feedback, err := ctrl.SubmitAnswer(sessionID, req.Answer)
		if err != nil {
			switch {
			case errors.Is(err, controller.ErrSessionNotFound):
				render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			case errors.Is(err, quiz.ErrNoActiveQuestion):
				render.JSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			default:
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, feedback)
	}
}

func endSessionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		entry, err := ctrl.EndSession(sessionID)
		if err != nil {
			if errors.Is(err, controller.ErrSessionNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
				return
			}
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, entry)
	}
}

func refreshRosterHandler(ctrl controller.C, render *render.Render, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.RefreshRoster(r.Context()); err != nil {
			log.Warn().Err(err).Msg("forced roster refresh failed")
			render.JSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
	}
}
