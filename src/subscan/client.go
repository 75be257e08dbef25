package subscan

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Resolves finalized chain snapshots through the Subscan API.
// All failures collapse into ErrSnapshotUnavailable, the caller retries
// on the next cycle.
type Client struct {
	config  *config.Subscan
	client  *resty.Client
	limiter *rate.Limiter
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = &config.Subscan
	self.client = resty.New().
		SetBaseURL(self.config.Endpoint).
		SetTimeout(self.config.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-API-Key", self.config.ApiKey)
	self.limiter = rate.NewLimiter(rate.Limit(self.config.RateLimitPerSecond), 1)
	return
}

func (self *Client) post(ctx context.Context, url string, body any) (data json.RawMessage, err error) {
	err = self.limiter.Wait(ctx)
	if err != nil {
		return
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&envelope{}).
		ForceContentType("application/json").
		Post(url)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSnapshotUnavailable, err)
		return
	}
	if resp.IsError() {
		err = fmt.Errorf("%w: status %d", ErrSnapshotUnavailable, resp.StatusCode())
		return
	}

	out, ok := resp.Result().(*envelope)
	if !ok || out == nil {
		err = fmt.Errorf("%w: malformed response", ErrSnapshotUnavailable)
		return
	}
	if out.Code != 0 {
		err = fmt.Errorf("%w: code %d: %s", ErrSnapshotUnavailable, out.Code, out.Message)
		return
	}

	data = out.Data
	return
}

// Latest known block height reported by the indexer
func (self *Client) GetHeadHeight(ctx context.Context) (height uint64, err error) {
	data, err := self.post(ctx, "/api/scan/metadata", struct{}{})
	if err != nil {
		return
	}

	var meta metadataData
	err = json.Unmarshal(data, &meta)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSnapshotUnavailable, err)
		return
	}

	height, err = strconv.ParseUint(meta.BlockNum, 10, 64)
	if err != nil {
		err = fmt.Errorf("%w: bad block number %q", ErrSnapshotUnavailable, meta.BlockNum)
		return
	}
	return
}

func (self *Client) GetBlockHash(ctx context.Context, height uint64) (hash string, err error) {
	data, err := self.post(ctx, "/api/scan/block", map[string]uint64{"block_num": height})
	if err != nil {
		return
	}

	var block blockData
	err = json.Unmarshal(data, &block)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSnapshotUnavailable, err)
		return
	}
	if block.Hash == "" {
		err = fmt.Errorf("%w: empty hash for block %d", ErrSnapshotUnavailable, height)
		return
	}

	hash = block.Hash
	return
}

// Fresh finalized snapshot, head minus the configured finality offset.
// Called once per referendum right before signing, never reused.
func (self *Client) GetSnapshot(ctx context.Context) (out *Snapshot, err error) {
	head, err := self.GetHeadHeight(ctx)
	if err != nil {
		return
	}

	height := head
	if height > self.config.FinalityOffset {
		height -= self.config.FinalityOffset
	}

	hash, err := self.GetBlockHash(ctx, height)
	if err != nil {
		return
	}

	out = &Snapshot{Height: height, Hash: hash}
	return
}
