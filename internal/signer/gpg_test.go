package signer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestKey generates a throwaway key pair and stores the armored private
// key in dir
func writeTestKey(t *testing.T, dir string) string {
	t.Helper()

	entity, err := openpgp.NewEntity("rdbdiff test", "", "test@example.org", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.SerializePrivate(w, nil))
	require.NoError(t, w.Close())

	path := filepath.Join(dir, "private.asc")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	keyPath := writeTestKey(t, dir)

	s, err := NewGPGSigner(keyPath, "")
	require.NoError(t, err)

	data := []byte(`{"length":0,"packages":[]}`)
	sig, err := s.SignDetached(data)
	require.NoError(t, err)
	assert.Contains(t, string(sig), "BEGIN PGP SIGNATURE")

	pub, err := s.GetPublicKey()
	require.NoError(t, err)
	pubPath := filepath.Join(dir, "public.asc")
	require.NoError(t, os.WriteFile(pubPath, pub, 0644))

	v, err := NewGPGVerifier(pubPath)
	require.NoError(t, err)

	t.Run("valid signature", func(t *testing.T) {
		who, err := v.VerifyDetached(data, sig)
		assert.NoError(t, err)
		assert.Contains(t, who, "test@example.org")
	})
	t.Run("tampered data", func(t *testing.T) {
		_, err := v.VerifyDetached([]byte(`{"length":1,"packages":[]}`), sig)
		assert.Error(t, err)
	})
	t.Run("garbage signature", func(t *testing.T) {
		_, err := v.VerifyDetached(data, []byte("not a signature"))
		assert.Error(t, err)
	})
}

func TestNewGPGSigner_Errors(t *testing.T) {
	_, err := NewGPGSigner("", "")
	assert.Error(t, err)

	_, err = NewGPGSigner(filepath.Join(t.TempDir(), "missing.asc"), "")
	assert.Error(t, err)

	_, err = NewGPGVerifier("")
	assert.Error(t, err)
}
