package subscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	server *httptest.Server

	head      uint64
	code      int
	apiKeys   []string
	blockNums []uint64
}

func (s *ClientTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
}

func (s *ClientTestSuite) TearDownSuite() {
	s.cancel()
	s.server.Close()
}

func (s *ClientTestSuite) SetupTest() {
	s.head = 1000
	s.code = 0
	s.apiKeys = nil
	s.blockNums = nil
}

func (s *ClientTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	s.apiKeys = append(s.apiKeys, r.Header.Get("X-API-Key"))
	w.Header().Set("Content-Type", "application/json")

	if s.code != 0 {
		fmt.Fprintf(w, `{"code":%d,"message":"Record Not Found","data":null}`, s.code)
		return
	}

	switch r.URL.Path {
	case "/api/scan/metadata":
		fmt.Fprintf(w, `{"code":0,"message":"Success","data":{"blockNum":"%d"}}`, s.head)
	case "/api/scan/block":
		var req map[string]uint64
		err := json.NewDecoder(r.Body).Decode(&req)
		require.Nil(s.T(), err)
		s.blockNums = append(s.blockNums, req["block_num"])
		fmt.Fprintf(w, `{"code":0,"message":"Success","data":{"hash":"0xhash%d"}}`, req["block_num"])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *ClientTestSuite) client() *Client {
	conf := config.Default()
	conf.Subscan.Endpoint = s.server.URL
	conf.Subscan.ApiKey = "test-key"
	conf.Subscan.FinalityOffset = 50
	conf.Subscan.RateLimitPerSecond = 1000
	return NewClient(conf)
}

func (s *ClientTestSuite) TestGetSnapshotAppliesFinalityOffset() {
	s.head = 1000

	out, err := s.client().GetSnapshot(s.ctx)
	require.Nil(s.T(), err)
	require.NotNil(s.T(), out)
	require.Equal(s.T(), uint64(950), out.Height)
	require.Equal(s.T(), "0xhash950", out.Hash)
	require.Equal(s.T(), []uint64{950}, s.blockNums)
}

func (s *ClientTestSuite) TestGetSnapshotLowHead() {
	s.head = 10

	out, err := s.client().GetSnapshot(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(10), out.Height)
}

func (s *ClientTestSuite) TestApiKeyIsSent() {
	_, err := s.client().GetHeadHeight(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), []string{"test-key"}, s.apiKeys)
}

func (s *ClientTestSuite) TestNonZeroCode() {
	s.code = 10004

	_, err := s.client().GetSnapshot(s.ctx)
	require.NotNil(s.T(), err)
	require.ErrorIs(s.T(), err, ErrSnapshotUnavailable)
	require.Contains(s.T(), err.Error(), "10004")
}
