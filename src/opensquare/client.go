package opensquare

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/go-resty/resty/v2"
)

// Client publishes signed proposals to an OpenSquare voting space.
type Client struct {
	config *config.OpenSquare
	client *resty.Client
}

type newProposalRequest struct {
	Data      *ProposalData `json:"data"`
	Address   string        `json:"address"`
	Signature string        `json:"signature"`
}

type newProposalResponse struct {
	Cid     string `json:"cid"`
	Message string `json:"message"`
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = &config.OpenSquare
	self.client = resty.New().
		SetBaseURL(self.config.Endpoint).
		SetTimeout(self.config.RequestTimeout).
		SetHeader("Content-Type", "application/json")
	return
}

// PublishProposal sends the proposal with its sr25519 signature over
// the canonical JSON bytes. Returns the CID assigned by the space.
//
// The request body embeds the already-marshalled canonical bytes, so
// what the destination verifies is exactly what was signed.
func (self *Client) PublishProposal(ctx context.Context, canonical []byte, address string, signature []byte) (cid string, err error) {
	body, err := json.Marshal(struct {
		Data      json.RawMessage `json:"data"`
		Address   string          `json:"address"`
		Signature string          `json:"signature"`
	}{
		Data:      canonical,
		Address:   address,
		Signature: "0x" + hex.EncodeToString(signature),
	})
	if err != nil {
		return
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&newProposalResponse{}).
		SetError(&newProposalResponse{}).
		ForceContentType("application/json").
		Post(fmt.Sprintf("/api/%s/proposals", self.config.Space))
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrTransient, err)
		return
	}

	if resp.IsError() {
		err = self.mapError(resp)
		return
	}

	out, ok := resp.Result().(*newProposalResponse)
	if !ok || out == nil {
		// Published but the CID could not be read, still a success
		return "", nil
	}
	return out.Cid, nil
}

func (self *Client) mapError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code == 429 || code >= 500 {
		return fmt.Errorf("%w: status %d", ErrTransient, code)
	}

	message := ""
	if out, ok := resp.Error().(*newProposalResponse); ok && out != nil {
		message = out.Message
	}
	if strings.Contains(strings.ToLower(message), "exist") {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, message)
	}
	return fmt.Errorf("%w: status %d: %s", ErrRejected, code, message)
}
