package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabblegame-go/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	memory *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.memory = New()
	s.Storage = s.memory
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestReturnedRecordsAreCopies() {
	move := storagetest.Move(1, 1, "p1")
	s.Require().NoError(s.memory.AppendMove(s.Ctx, move))
	move.Words[0] = "ZZ"

	moves, err := s.memory.ListMoves(s.Ctx, 1)
	s.Require().NoError(err)
	s.Equal([]string{"AB"}, moves[0].Words)

	session := storagetest.Session("s", 1, "p1")
	s.Require().NoError(s.memory.SaveSession(s.Ctx, session))
	got, _ := s.memory.GetSession(s.Ctx, session.Digest)
	got.PlayerName = "changed"

	again, _ := s.memory.GetSession(s.Ctx, session.Digest)
	s.Equal(session.PlayerName, again.PlayerName)
}
