package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/quiz"
)

func (c *controller) StartSession(ctx context.Context, mode string) (*SessionInfo, error) {
	players, err := c.Roster(ctx, mode)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no players available for mode %s", mode)
	}

	id := uuid.NewString()
	session := quiz.NewSession(id, mode, players, c.clock.Now().UnixNano())

	c.mu.Lock()
	c.sessions[id] = session
	c.mu.Unlock()

	c.log.Info().Str("session", id).Str("mode", mode).Int("players", len(players)).Msg("session started")

	return &SessionInfo{
		ID:      id,
		Mode:    mode,
		Players: len(players),
	}, nil
}

func (c *controller) NextQuestion(sessionID string) (*model.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	q, ok := session.Next()
	if !ok {
		return nil, nil // roster exhausted, game over
	}
	return q, nil
}

func (c *controller) SubmitAnswer(sessionID, answer string) (*quiz.Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.Submit(answer)
}

func (c *controller) EndSession(sessionID string) (*model.ScoreEntry, error) {
	c.mu.Lock()
	session, ok := c.sessions[sessionID]
	if ok {
		delete(c.sessions, sessionID)
	}
	c.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	entry := session.Summary(c.clock.Now())
	if err := c.board.Record(entry); err != nil {
		// The game result still stands even if the leaderboard write fails.
		c.log.Warn().Str("session", sessionID).Err(err).Msg("error recording score")
	}

	c.log.Info().Str("session", sessionID).
		Int("correct", entry.Correct).Int("incorrect", entry.Incorrect).
		Float64("accuracy", entry.Accuracy).Msg("session finished")

	return &entry, nil
}
