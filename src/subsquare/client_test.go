package subsquare

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

	// Indexes returned by the fake API, newest first
	indexes []uint32
	status  int
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
	s.status = http.StatusOK
	s.indexes = nil
}

func (s *ClientTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	if s.status != http.StatusOK {
		w.WriteHeader(s.status)
		return
	}

	var page, pageSize int
	fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
	fmt.Sscanf(r.URL.Query().Get("page_size"), "%d", &pageSize)

	out := ReferendaPage{Total: len(s.indexes), Page: page, PageSize: pageSize}
	from := (page - 1) * pageSize
	for i := from; i < len(s.indexes) && i < from+pageSize; i++ {
		out.Items = append(out.Items, Referendum{
			ReferendumIndex: s.indexes[i],
			Title:           fmt.Sprintf("Referendum %d", s.indexes[i]),
			Track:           0,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(&out)
	require.Nil(s.T(), err)
}

func (s *ClientTestSuite) client() *Client {
	conf := config.Default()
	conf.SubSquare.Endpoint = s.server.URL
	conf.SubSquare.RetryCount = 0
	return NewClient(conf)
}

func (s *ClientTestSuite) TestGetReferendaPage() {
	s.indexes = []uint32{12, 11, 10}

	out, err := s.client().GetReferendaPage(s.ctx, 1, 2)
	require.Nil(s.T(), err)
	require.NotNil(s.T(), out)
	require.Equal(s.T(), 3, out.Total)
	require.Len(s.T(), out.Items, 2)
	require.Equal(s.T(), uint32(12), out.Items[0].ReferendumIndex)
}

func (s *ClientTestSuite) TestFetchSinceReturnsAscending() {
	s.indexes = []uint32{15, 14, 13, 12, 11}

	out, err := s.client().FetchSince(s.ctx, -1, 2, 10)
	require.Nil(s.T(), err)
	require.Len(s.T(), out, 5)
	for i := 1; i < len(out); i++ {
		require.Less(s.T(), out[i-1].ReferendumIndex, out[i].ReferendumIndex)
	}
}

func (s *ClientTestSuite) TestFetchSinceStopsAtKnownIndex() {
	s.indexes = []uint32{15, 14, 13, 12, 11}

	// Page 1 holds 15,14 and page 2 reaches down to 13, where the
	// walk stops. Known items stay in the result for the caller.
	out, err := s.client().FetchSince(s.ctx, 13, 2, 10)
	require.Nil(s.T(), err)
	require.Len(s.T(), out, 4)
	require.Equal(s.T(), uint32(12), out[0].ReferendumIndex)
	require.Equal(s.T(), uint32(15), out[3].ReferendumIndex)
}

func (s *ClientTestSuite) TestFetchSinceHonorsPageCap() {
	s.indexes = []uint32{15, 14, 13, 12, 11}

	out, err := s.client().FetchSince(s.ctx, -1, 2, 1)
	require.Nil(s.T(), err)
	require.Len(s.T(), out, 2)
}

func (s *ClientTestSuite) TestServerErrorIsTransient() {
	s.status = http.StatusInternalServerError

	_, err := s.client().GetReferendaPage(s.ctx, 1, 10)
	require.NotNil(s.T(), err)
	require.ErrorIs(s.T(), err, ErrTransient)
	require.True(s.T(), IsTransient(err))
}

func (s *ClientTestSuite) TestClientErrorIsNotTransient() {
	s.status = http.StatusNotFound

	_, err := s.client().GetReferendaPage(s.ctx, 1, 10)
	require.NotNil(s.T(), err)
	require.ErrorIs(s.T(), err, ErrUnexpectedStatus)
	require.False(s.T(), IsTransient(err))
}
