package opensquare

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"
	"github.com/opensquare-network/referenda-syncer/src/subscan"
	"github.com/opensquare-network/referenda-syncer/src/subsquare"
)

// ProposalData is the payload stored on the voting space. The signed
// bytes are its compact JSON encoding, so field order is part of the
// wire contract and must not change without bumping Version.
type ProposalData struct {
	Space           string            `json:"space"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	ContentType     string            `json:"contentType"`
	ChoiceType      string            `json:"choiceType"`
	Choices         []string          `json:"choices"`
	StartDate       int64             `json:"startDate"`
	EndDate         int64             `json:"endDate"`
	SnapshotHeights map[string]uint64 `json:"snapshotHeights"`
	RealProposer    *string           `json:"realProposer"`
	ProposerNetwork string            `json:"proposerNetwork"`
	Version         string            `json:"version"`
	Timestamp       int64             `json:"timestamp"`
	NetworksConfig  NetworksConfig    `json:"networksConfig"`
	Discussion      *string           `json:"discussion"`
}

type NetworksConfig struct {
	Symbol        string          `json:"symbol"`
	Decimals      uint8           `json:"decimals"`
	Networks      []NetworkDetail `json:"networks"`
	Accessibility string          `json:"accessibility"`
	Whitelist     []string        `json:"whitelist"`
	Strategies    []string        `json:"strategies"`
	Version       string          `json:"version"`
}

type NetworkDetail struct {
	Network    string        `json:"network"`
	Ss58Format uint16        `json:"ss58Format"`
	Assets     []AssetConfig `json:"assets"`
}

type AssetConfig struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

const (
	proposalVersion       = "5"
	networksConfigVersion = "4"
)

// NewProposal builds the voting space payload for one referendum over a
// fresh chain snapshot. The voting window starts at UTC midnight of the
// publish day.
func NewProposal(config *config.Config, referendum *subsquare.Referendum, snapshot *subscan.Snapshot, now time.Time) (self *ProposalData) {
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	conf := &config.OpenSquare

	self = &ProposalData{
		Space:       conf.Space,
		Title:       FormatTitle(referendum.Track, referendum.ReferendumIndex, referendum.Title),
		Content:     formatContent(config.SubSquare.ReferendaURL, referendum),
		ContentType: "markdown",
		ChoiceType:  "single",
		Choices:     conf.Choices,
		StartDate:   startOfDay.UnixMilli(),
		EndDate:     startOfDay.Add(conf.VotingPeriod).UnixMilli(),
		SnapshotHeights: map[string]uint64{
			conf.Network: snapshot.Height,
		},
		ProposerNetwork: conf.Network,
		Version:         proposalVersion,
		Timestamp:       now.Unix(),
		NetworksConfig: NetworksConfig{
			Symbol:   conf.Symbol,
			Decimals: conf.Decimals,
			Networks: []NetworkDetail{
				{
					Network:    conf.Network,
					Ss58Format: conf.Ss58Prefix,
					Assets: []AssetConfig{
						{Symbol: conf.Symbol, Decimals: conf.Decimals},
					},
				},
			},
			Accessibility: "whitelist",
			Whitelist:     conf.Whitelist,
			Strategies:    conf.Strategies,
			Version:       networksConfigVersion,
		},
	}
	return
}

// Canonical bytes signed by the proposer and sent on the wire
func (self *ProposalData) CanonicalJSON() ([]byte, error) {
	return json.Marshal(self)
}

func formatContent(referendaURL string, referendum *subsquare.Referendum) string {
	return fmt.Sprintf("%s/%d\n\n%s", referendaURL, referendum.ReferendumIndex, referendum.Summary())
}
