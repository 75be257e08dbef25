package opensquare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestPublishTestSuite(t *testing.T) {
	suite.Run(t, new(PublishTestSuite))
}

type PublishTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	server *httptest.Server

	status  int
	message string
	bodies  [][]byte
	paths   []string
}

func (s *PublishTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
}

func (s *PublishTestSuite) TearDownSuite() {
	s.cancel()
	s.server.Close()
}

func (s *PublishTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.message = ""
	s.bodies = nil
	s.paths = nil
}

func (s *PublishTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.Nil(s.T(), err)
	s.bodies = append(s.bodies, body)
	s.paths = append(s.paths, r.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	if s.status == http.StatusOK {
		fmt.Fprint(w, `{"cid":"QmTestCid"}`)
		return
	}
	fmt.Fprintf(w, `{"message":%q}`, s.message)
}

func (s *PublishTestSuite) client() *Client {
	conf := config.Default()
	conf.OpenSquare.Endpoint = s.server.URL
	conf.OpenSquare.Space = "polkadot"
	return NewClient(conf)
}

func (s *PublishTestSuite) TestPublishReturnsCid() {
	canonical := []byte(`{"space":"polkadot","title":"t"}`)
	signature := []byte{0xab, 0xcd}

	cid, err := s.client().PublishProposal(s.ctx, canonical, "addr", signature)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "QmTestCid", cid)
	require.Equal(s.T(), []string{"/api/polkadot/proposals"}, s.paths)

	// The signed bytes are embedded verbatim
	var sent struct {
		Data      json.RawMessage `json:"data"`
		Address   string          `json:"address"`
		Signature string          `json:"signature"`
	}
	require.Nil(s.T(), json.Unmarshal(s.bodies[0], &sent))
	require.Equal(s.T(), canonical, []byte(sent.Data))
	require.Equal(s.T(), "addr", sent.Address)
	require.Equal(s.T(), "0xabcd", sent.Signature)
}

func (s *PublishTestSuite) TestServerErrorIsTransient() {
	s.status = http.StatusBadGateway

	_, err := s.client().PublishProposal(s.ctx, []byte(`{}`), "addr", nil)
	require.ErrorIs(s.T(), err, ErrTransient)
}

func (s *PublishTestSuite) TestRejected() {
	s.status = http.StatusBadRequest
	s.message = "invalid proposal"

	_, err := s.client().PublishProposal(s.ctx, []byte(`{}`), "addr", nil)
	require.ErrorIs(s.T(), err, ErrRejected)
	require.Contains(s.T(), err.Error(), "invalid proposal")
}

func (s *PublishTestSuite) TestAlreadyExists() {
	s.status = http.StatusBadRequest
	s.message = "proposal already exists"

	_, err := s.client().PublishProposal(s.ctx, []byte(`{}`), "addr", nil)
	require.ErrorIs(s.T(), err, ErrAlreadyExists)
}
