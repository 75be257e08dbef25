package signer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/cosmos/go-bip39"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Signing keys are validated once at startup, a bad secret is fatal
var ErrBadSecret = errors.New("bad signing secret")

// Signer holds the sr25519 identity that authenticates published
// proposals. Proposals are signed over the raw canonical JSON bytes
// with the standard substrate signing context.
type Signer struct {
	secretKey *schnorrkel.SecretKey
	publicKey *schnorrkel.PublicKey
	address   string
}

// Accepts either a BIP39 mnemonic or a 0x-prefixed 32 byte hex seed
func NewSigner(config *config.Config) (self *Signer, err error) {
	secret := strings.TrimSpace(config.OpenSquare.SecretPhrase)
	if secret == "" {
		err = fmt.Errorf("%w: empty secret phrase", ErrBadSecret)
		return
	}

	var miniSecret [32]byte
	if strings.HasPrefix(secret, "0x") || isHex(secret) {
		var keyBytes []byte
		keyBytes, err = hex.DecodeString(strings.TrimPrefix(secret, "0x"))
		if err != nil {
			err = fmt.Errorf("%w: %s", ErrBadSecret, err)
			return
		}
		if len(keyBytes) != 32 {
			err = fmt.Errorf("%w: expected 32 byte seed, got %d", ErrBadSecret, len(keyBytes))
			return
		}
		copy(miniSecret[:], keyBytes)
	} else {
		var seed []byte
		seed, err = bip39.NewSeedWithErrorChecking(secret, "")
		if err != nil {
			err = fmt.Errorf("%w: %s", ErrBadSecret, err)
			return
		}
		copy(miniSecret[:], seed[:32])
	}

	miniSecretKey, err := schnorrkel.NewMiniSecretKeyFromRaw(miniSecret)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrBadSecret, err)
		return
	}

	self = new(Signer)
	self.secretKey = miniSecretKey.ExpandEd25519()
	self.publicKey, err = self.secretKey.Public()
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrBadSecret, err)
		return
	}

	self.address = publicKeyToSS58(self.publicKey, config.OpenSquare.Ss58Prefix)
	return
}

func (self *Signer) Sign(message []byte) (signature []byte, err error) {
	ctx := schnorrkel.NewSigningContext([]byte("substrate"), message)
	sig, err := self.secretKey.Sign(ctx)
	if err != nil {
		return
	}

	encoded := sig.Encode()
	signature = encoded[:]
	return
}

// SS58 encoded address under the configured network prefix
func (self *Signer) Address() string {
	return self.address
}

func (self *Signer) PublicKey() *schnorrkel.PublicKey {
	return self.publicKey
}

func isHex(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func publicKeyToSS58(pubKey *schnorrkel.PublicKey, prefix uint16) string {
	payload := make([]byte, 0, 35)
	payload = appendPrefix(payload, prefix)

	pubKeyBytes := pubKey.Encode()
	payload = append(payload, pubKeyBytes[:]...)

	checksumInput := appendPrefix([]byte("SS58PRE"), prefix)
	checksumInput = append(checksumInput, pubKeyBytes[:]...)

	h, _ := blake2b.New(64, nil)
	h.Write(checksumInput)
	checksum := h.Sum(nil)

	payload = append(payload, checksum[0:2]...)
	return base58.Encode(payload)
}

func appendPrefix(payload []byte, prefix uint16) []byte {
	if prefix < 64 {
		return append(payload, byte(prefix))
	}
	return append(payload, 0x40|(byte(prefix>>8)&0x3f), byte(prefix&0xff))
}
