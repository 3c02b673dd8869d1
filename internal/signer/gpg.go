package signer

import (
	"bytes"
	"crypto"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// GPGSigner implements Signer interface using GPG
type GPGSigner struct {
	entity *openpgp.Entity
}

// NewGPGSigner creates a new GPG signer from a private key file
func NewGPGSigner(keyPath, passphrase string) (*GPGSigner, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	entityList, err := readKeyRing(keyPath)
	if err != nil {
		return nil, err
	}

	entity := entityList[0]
	if entity.PrivateKey == nil {
		return nil, fmt.Errorf("key file %s holds no private key", keyPath)
	}

	// Decrypt private key if passphrase provided
	if passphrase != "" {
		if entity.PrivateKey.Encrypted {
			err = entity.PrivateKey.Decrypt([]byte(passphrase))
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt private key: %w", err)
			}
		}

		// Decrypt subkeys as well
		for _, subkey := range entity.Subkeys {
			if subkey.PrivateKey != nil && subkey.PrivateKey.Encrypted {
				err = subkey.PrivateKey.Decrypt([]byte(passphrase))
				if err != nil {
					return nil, fmt.Errorf("failed to decrypt subkey: %w", err)
				}
			}
		}
	}

	return &GPGSigner{entity: entity}, nil
}

// SignDetached creates a detached signature (<snapshot>.asc)
func (s *GPGSigner) SignDetached(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	err := openpgp.ArmoredDetachSign(&buf, s.entity, bytes.NewReader(data), &packet.Config{
		DefaultHash: crypto.SHA512,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create detached signature: %w", err)
	}

	return buf.Bytes(), nil
}

// GetPublicKey returns the public key in armored format
func (s *GPGSigner) GetPublicKey() ([]byte, error) {
	var buf bytes.Buffer

	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}

	err = s.entity.Serialize(w)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GPGVerifier implements Verifier interface against a public keyring
type GPGVerifier struct {
	keyring openpgp.EntityList
}

// NewGPGVerifier loads an armored or binary public keyring
func NewGPGVerifier(keyringPath string) (*GPGVerifier, error) {
	if keyringPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	entityList, err := readKeyRing(keyringPath)
	if err != nil {
		return nil, err
	}
	return &GPGVerifier{keyring: entityList}, nil
}

// VerifyDetached checks an armored detached signature over data
func (v *GPGVerifier) VerifyDetached(data, signature []byte) (string, error) {
	entity, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	for name := range entity.Identities {
		return name, nil
	}
	return entity.PrimaryKey.KeyIdString(), nil
}

// readKeyRing reads a keyring file, trying the armored form first
func readKeyRing(path string) (openpgp.EntityList, error) {
	keyFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer keyFile.Close()

	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary key
		if _, seekErr := keyFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, seekErr
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}
	return entityList, nil
}
