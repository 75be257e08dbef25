package subsquare

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/go-resty/resty/v2"
)

// Read-only client for the SubSquare referenda listing API.
type Client struct {
	config *config.SubSquare
	client *resty.Client
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = &config.SubSquare
	self.client = resty.New().
		SetBaseURL(self.config.Endpoint).
		SetTimeout(self.config.RequestTimeout).
		SetRetryCount(self.config.RetryCount).
		SetHeader("Accept", "application/json")
	return
}

// Newest referenda come first, page numbering starts at 1
func (self *Client) GetReferendaPage(ctx context.Context, page, pageSize int) (out *ReferendaPage, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("page_size", strconv.Itoa(pageSize)).
		SetQueryParam("simple", "false").
		SetResult(&ReferendaPage{}).
		ForceContentType("application/json").
		Get("/gov2/referendums")
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrTransient, err)
		return
	}

	if resp.IsError() {
		code := resp.StatusCode()
		if code == 429 || code >= 500 {
			err = fmt.Errorf("%w: status %d", ErrTransient, code)
			return
		}
		err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
		return
	}

	out, ok := resp.Result().(*ReferendaPage)
	if !ok || out == nil {
		err = ErrMalformedResponse
		return
	}
	return
}

// Returns the referenda on all visited pages, ascending. Pages are
// walked newest first and the walk stops once a page reaches down to
// afterIndex or the page cap is hit. afterIndex only shortens the walk,
// items at or below it are still returned so the caller's own dedup
// can retry earlier gaps.
func (self *Client) FetchSince(ctx context.Context, afterIndex int64, pageSize, maxPages int) (out []Referendum, err error) {
	seen := make(map[uint32]struct{})

	for page := 1; page <= maxPages; page++ {
		var resp *ReferendaPage
		resp, err = self.GetReferendaPage(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}

		reachedKnown := false
		for _, item := range resp.Items {
			if int64(item.ReferendumIndex) <= afterIndex {
				reachedKnown = true
			}
			if _, ok := seen[item.ReferendumIndex]; ok {
				continue
			}
			seen[item.ReferendumIndex] = struct{}{}
			out = append(out, item)
		}

		if reachedKnown || page*pageSize >= resp.Total {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ReferendumIndex < out[j].ReferendumIndex
	})
	return
}

// True when the error should be retried on the next cycle instead of
// being counted as a permanent failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
