package subscan

import "encoding/json"

// Finalized chain state captured right before a proposal is signed
type Snapshot struct {
	Height uint64
	Hash   string
}

// Standard Subscan response envelope, code 0 means success
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type metadataData struct {
	BlockNum string `json:"blockNum"`
}

type blockData struct {
	Hash string `json:"hash"`
}
