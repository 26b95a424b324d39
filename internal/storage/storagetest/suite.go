// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// Suite runs the storage contract against a backend. Embedding suites set
// Storage in their SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Session returns a session record for tests
func Session(id model.SessionID, room model.RoomNumber, player model.PlayerID) *model.SessionRecord {
	return &model.SessionRecord{
		Digest:     id.Digest(),
		RoomNumber: room,
		PlayerID:   player,
		PlayerName: "Player " + string(player),
		CreatedAt:  baseTime,
		LastSeenAt: baseTime,
	}
}

// Move returns a move record for tests
func Move(room model.RoomNumber, number int, player model.PlayerID) *model.MoveRecord {
	return &model.MoveRecord{
		RoomNumber: room,
		MoveNumber: number,
		PlayerID:   player,
		Kind:       model.MovePlace,
		Score:      number * 10,
		TileCount:  2,
		Words:      []string{"AB"},
		CreatedAt:  baseTime.Add(time.Duration(number) * time.Minute),
	}
}

// Session tests

func (s *Suite) TestSaveAndGetSession() {
	session := Session("session-1", 1, "p1")

	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	got, err := s.Storage.GetSession(s.Ctx, session.Digest)
	s.Require().NoError(err)
	s.Equal(session.RoomNumber, got.RoomNumber)
	s.Equal(session.PlayerID, got.PlayerID)
	s.Equal(session.PlayerName, got.PlayerName)
	s.True(session.CreatedAt.Equal(got.CreatedAt))
}

func (s *Suite) TestGetSessionNotFound() {
	_, err := s.Storage.GetSession(s.Ctx, model.SessionID("missing").Digest())
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestSaveSessionOverwrites() {
	session := Session("session-1", 1, "p1")
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	session.LastSeenAt = baseTime.Add(time.Hour)
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	got, err := s.Storage.GetSession(s.Ctx, session.Digest)
	s.Require().NoError(err)
	s.True(session.LastSeenAt.Equal(got.LastSeenAt))

	sessions, err := s.Storage.ListSessionsForRoom(s.Ctx, 1)
	s.Require().NoError(err)
	s.Len(sessions, 1)
}

func (s *Suite) TestListSessionsForRoom() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, Session("a", 1, "p1")))
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, Session("b", 1, "p2")))
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, Session("c", 2, "p1")))

	sessions, err := s.Storage.ListSessionsForRoom(s.Ctx, 1)
	s.Require().NoError(err)
	s.Len(sessions, 2)

	var players []model.PlayerID
	for _, session := range sessions {
		s.Equal(model.RoomNumber(1), session.RoomNumber)
		players = append(players, session.PlayerID)
	}
	s.ElementsMatch([]model.PlayerID{"p1", "p2"}, players)

	empty, err := s.Storage.ListSessionsForRoom(s.Ctx, 9)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *Suite) TestDeleteSessionsForRoom() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, Session("a", 1, "p1")))
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, Session("c", 2, "p1")))

	s.Require().NoError(s.Storage.DeleteSessionsForRoom(s.Ctx, 1))

	_, err := s.Storage.GetSession(s.Ctx, model.SessionID("a").Digest())
	s.ErrorIs(err, model.ErrSessionNotFound)

	sessions, err := s.Storage.ListSessionsForRoom(s.Ctx, 1)
	s.Require().NoError(err)
	s.Empty(sessions)

	_, err = s.Storage.GetSession(s.Ctx, model.SessionID("c").Digest())
	s.NoError(err)
}

// Move log tests

func (s *Suite) TestAppendAndListMoves() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.Storage.AppendMove(s.Ctx, Move(1, i, "p1")))
	}
	s.Require().NoError(s.Storage.AppendMove(s.Ctx, Move(2, 1, "p9")))

	moves, err := s.Storage.ListMoves(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(moves, 3)
	for i, m := range moves {
		s.Equal(i+1, m.MoveNumber)
		s.Equal((i+1)*10, m.Score)
		s.Equal([]string{"AB"}, m.Words)
		s.Equal(model.MovePlace, m.Kind)
	}
}

func (s *Suite) TestListMovesEmpty() {
	moves, err := s.Storage.ListMoves(s.Ctx, 5)
	s.Require().NoError(err)
	s.Empty(moves)
}

// Game summary tests

func (s *Suite) TestSaveAndListGameSummaries() {
	summary := &model.GameSummary{
		RoomNumber:  1,
		FinalScores: map[model.PlayerID]int{"p1": 30, "p2": 12},
		Winners:     []model.PlayerID{"p1"},
		MoveCount:   14,
		FinishedAt:  baseTime,
	}
	s.Require().NoError(s.Storage.SaveGameSummary(s.Ctx, summary))

	summaries, err := s.Storage.ListGameSummaries(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(summary.FinalScores, summaries[0].FinalScores)
	s.Equal(summary.Winners, summaries[0].Winners)
	s.Equal(14, summaries[0].MoveCount)

	other, err := s.Storage.ListGameSummaries(s.Ctx, 2)
	s.Require().NoError(err)
	s.Empty(other)
}
