package skills_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-sheet/internal/clients/embeddings"
	mockembeddings "github.com/KirkDiggler/character-sheet/internal/clients/embeddings/mock"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	skillsrepo "github.com/KirkDiggler/character-sheet/internal/repositories/skills"
	mockskills "github.com/KirkDiggler/character-sheet/internal/repositories/skills/mock"
	"github.com/KirkDiggler/character-sheet/internal/services/settings"
	"github.com/KirkDiggler/character-sheet/internal/services/skills"
)

type SkillsServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	embedder *mockembeddings.MockEmbedder
	repo     *mockskills.MockRepository
	keys     []string
	svc      skills.Service
	ctx      context.Context
}

func (s *SkillsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.embedder = mockembeddings.NewMockEmbedder(s.ctrl)
	s.repo = mockskills.NewMockRepository(s.ctrl)
	s.keys = nil
	s.ctx = context.Background()

	s.svc = skills.NewService(&skills.ServiceConfig{
		NewEmbedder: func(apiKey string) (embeddings.Embedder, error) {
			s.keys = append(s.keys, apiKey)
			return s.embedder, nil
		},
		NewRepository: func(context.Context) (skillsrepo.Repository, error) {
			return s.repo, nil
		},
	})
}

func (s *SkillsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSkillsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SkillsServiceTestSuite))
}

func (s *SkillsServiceTestSuite) configure() {
	s.Require().NoError(s.svc.Initialize(s.ctx, settings.Settings{
		SupabaseURL:        "postgres://db",
		SupabaseServiceKey: "svc",
		OpenAIAPIKey:       "sk-1",
	}))
}

func (s *SkillsServiceTestSuite) TestLookup_NotConfigured() {
	_, err := s.svc.Lookup(s.ctx, "climb a wall", 3)
	s.True(sheeterr.IsUnavailable(err))
	s.False(s.svc.Ready())
}

func (s *SkillsServiceTestSuite) TestLookup_EmptyQuery() {
	s.configure()

	_, err := s.svc.Lookup(s.ctx, "  ", 3)
	s.True(sheeterr.IsInvalidArgument(err))
}

func (s *SkillsServiceTestSuite) TestLookup() {
	s.configure()
	vector := []float32{0.1, 0.2}
	want := []*skillsrepo.Skill{{Name: "Athletics", Distance: 0.12}}

	s.embedder.EXPECT().Embed(gomock.Any(), "climb a wall").Return(vector, nil)
	s.repo.EXPECT().Nearest(gomock.Any(), vector, skills.DefaultLimit).Return(want, nil)

	got, err := s.svc.Lookup(s.ctx, " climb a wall ", 0)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *SkillsServiceTestSuite) TestLookup_EmbedFailure() {
	s.configure()
	s.embedder.EXPECT().Embed(gomock.Any(), "climb").Return(nil, errors.New("rate limited"))

	_, err := s.svc.Lookup(s.ctx, "climb", 2)
	s.Error(err)
}

func (s *SkillsServiceTestSuite) TestInitialize_ReusesEmbedderForSameKey() {
	s.configure()
	s.configure()
	s.Equal([]string{"sk-1"}, s.keys)
	s.True(s.svc.Ready())
}

func (s *SkillsServiceTestSuite) TestInitialize_WithoutOpenAIKey() {
	s.configure()

	err := s.svc.Initialize(s.ctx, settings.Settings{SupabaseURL: "postgres://db", SupabaseServiceKey: "svc"})
	s.NoError(err)
	s.False(s.svc.Ready())
}

func (s *SkillsServiceTestSuite) TestInitialize_RepositoryFailure() {
	svc := skills.NewService(&skills.ServiceConfig{
		NewEmbedder: func(string) (embeddings.Embedder, error) { return s.embedder, nil },
		NewRepository: func(context.Context) (skillsrepo.Repository, error) {
			return nil, sheeterr.Unavailable("backend is not configured")
		},
	})

	err := svc.Initialize(s.ctx, settings.Settings{OpenAIAPIKey: "sk"})
	s.True(sheeterr.IsUnavailable(err))
	s.False(svc.Ready())
}

func (s *SkillsServiceTestSuite) TestIndex() {
	s.configure()
	skill := &skillsrepo.Skill{Name: "Stealth", Description: "move unseen"}
	vector := []float32{1}

	s.embedder.EXPECT().Embed(gomock.Any(), "Stealth: move unseen").Return(vector, nil)
	s.repo.EXPECT().Upsert(gomock.Any(), skill, vector).Return(nil)

	s.NoError(s.svc.Index(s.ctx, skill))
}

func (s *SkillsServiceTestSuite) TestIndex_RequiresName() {
	s.configure()
	s.True(sheeterr.IsInvalidArgument(s.svc.Index(s.ctx, &skillsrepo.Skill{})))
}
