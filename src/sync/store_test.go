package sync

import (
	"context"
	"testing"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config
}

func (s *StoreTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()
}

func (s *StoreTestSuite) TearDownSuite() {
	s.cancel()
}

func (s *StoreTestSuite) TestNewStore() {
	store := NewStore(s.config)
	assert.NotNil(s.T(), store)
	assert.NotNil(s.T(), store.cache)
}

func (s *StoreTestSuite) TestCachedIndexSkipsTheDatabase() {
	// No db wired on purpose, a cache hit must not touch it
	store := NewStore(s.config)
	store.cache.SetDefault(cacheKey(42), struct{}{})

	published, err := store.IsPublished(s.ctx, 42)
	assert.Nil(s.T(), err)
	assert.True(s.T(), published)
}
