package signer

import (
	"testing"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/stretchr/testify/require"
)

const devMnemonic = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func newTestSigner(t *testing.T, secret string) *Signer {
	conf := config.Default()
	conf.OpenSquare.SecretPhrase = secret
	conf.OpenSquare.Ss58Prefix = 0

	s, err := NewSigner(conf)
	require.Nil(t, err)
	require.NotNil(t, s)
	return s
}

func TestAddressIsDeterministic(t *testing.T) {
	a := newTestSigner(t, devMnemonic)
	b := newTestSigner(t, devMnemonic)

	require.NotEmpty(t, a.Address())
	require.Equal(t, a.Address(), b.Address())
}

func TestHexSeed(t *testing.T) {
	s := newTestSigner(t, "0x"+"fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e")
	require.NotEmpty(t, s.Address())

	// Same key without the 0x prefix yields the same identity
	unprefixed := newTestSigner(t, "fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e")
	require.Equal(t, s.Address(), unprefixed.Address())
}

func TestSignatureVerifies(t *testing.T) {
	s := newTestSigner(t, devMnemonic)

	message := []byte(`{"space":"polkadot","title":"[R] #42 - Example"}`)
	signature, err := s.Sign(message)
	require.Nil(t, err)
	require.Len(t, signature, 64)

	var raw [64]byte
	copy(raw[:], signature)
	sig := new(schnorrkel.Signature)
	err = sig.Decode(raw)
	require.Nil(t, err)

	ok, err := s.PublicKey().Verify(sig, schnorrkel.NewSigningContext([]byte("substrate"), message))
	require.Nil(t, err)
	require.True(t, ok)
}

func TestSignaturesDifferPerMessage(t *testing.T) {
	s := newTestSigner(t, devMnemonic)

	first, err := s.Sign([]byte("first"))
	require.Nil(t, err)
	second, err := s.Sign([]byte("second"))
	require.Nil(t, err)
	require.NotEqual(t, first, second)
}

func TestBadSecrets(t *testing.T) {
	for _, secret := range []string{
		"",
		"not a valid mnemonic at all",
		"0xdeadbeef",
	} {
		conf := config.Default()
		conf.OpenSquare.SecretPhrase = secret

		_, err := NewSigner(conf)
		require.NotNil(t, err, "secret %q", secret)
		require.ErrorIs(t, err, ErrBadSecret)
	}
}
