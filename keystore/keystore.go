package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/izouxv/goHSSS/hsss"
	"github.com/izouxv/goHSSS/utils"
	"golang.org/x/crypto/scrypt"
)

const (
	keyHeaderKDF = "scrypt"
	version      = 1
)

// ScryptN is the N parameter of Scrypt encryption algorithm, using 2^18 per recommendation for standard security.
// For testing, a smaller value can be used to speed up execution.
var ScryptN = 1 << 18

// ScryptP is the P parameter of Scrypt encryption algorithm, using 1 per recommendation.
var ScryptP = 1

var (
	// ErrInvalidPassword is returned when the password for decryption is incorrect.
	ErrInvalidPassword = errors.New("invalid password")
)

// Envelope is the top-level structure for a protected share. The party index
// is kept in the clear so holders can tell envelopes apart without the
// password; the share payload only exists inside the ciphertext.
type Envelope struct {
	ID      string     `json:"id"`
	Version int        `json:"version"`
	Party   int        `json:"party"`
	Crypto  CryptoJSON `json:"crypto"`
}

// CryptoJSON contains the cryptographic parameters.
type CryptoJSON struct {
	Cipher     string           `json:"cipher"`
	CipherText hexutil.Bytes    `json:"ciphertext"`
	KDF        string           `json:"kdf"`
	KDFParams  ScryptParamsJSON `json:"kdfparams"`
}

// ScryptParamsJSON contains the parameters for the scrypt KDF.
type ScryptParamsJSON struct {
	N     int           `json:"n"`
	R     int           `json:"r"`
	P     int           `json:"p"`
	Dklen int           `json:"dklen"`
	Salt  hexutil.Bytes `json:"salt"`
}

// EncryptShare encrypts a share under a password using scrypt and
// AES-256-GCM, returning the JSON-encoded envelope bytes.
func EncryptShare(part hsss.Part, password string) ([]byte, error) {
	plaintext := part.Encode()
	defer utils.Zeroize(plaintext)

	// Generate a random salt for scrypt
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	// Derive the encryption key from the password using scrypt.
	// We derive a 32-byte key for AES-256-GCM.
	const dklen = 32
	derivedKey, err := scrypt.Key([]byte(password), salt, ScryptN, 8, ScryptP, dklen)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(derivedKey)

	cipherText, err := gcmEncrypt(plaintext, derivedKey, nil)
	if err != nil {
		return nil, err
	}

	envelope := &Envelope{
		ID:      uuid.New().String(),
		Version: version,
		Party:   part.Number,
		Crypto: CryptoJSON{
			Cipher:     "aes-256-gcm",
			CipherText: cipherText,
			KDF:        keyHeaderKDF,
			KDFParams: ScryptParamsJSON{
				N:     ScryptN,
				R:     8,
				P:     ScryptP,
				Dklen: dklen,
				Salt:  salt,
			},
		},
	}

	return json.MarshalIndent(envelope, "", "  ")
}

// DecryptShare decrypts an envelope using a password.
func DecryptShare(data []byte, password string) (hsss.Part, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return hsss.Part{}, err
	}

	if envelope.Crypto.KDF != keyHeaderKDF {
		return hsss.Part{}, fmt.Errorf("unsupported KDF: %s", envelope.Crypto.KDF)
	}
	if envelope.Crypto.Cipher != "aes-256-gcm" {
		return hsss.Part{}, fmt.Errorf("unsupported cipher: %s", envelope.Crypto.Cipher)
	}

	// Re-derive the key from the password and stored salt
	kdfParams := envelope.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(password), kdfParams.Salt, kdfParams.N, kdfParams.R, kdfParams.P, kdfParams.Dklen)
	if err != nil {
		return hsss.Part{}, err
	}
	defer utils.Zeroize(derivedKey)

	// GCM's Open function handles authentication. If the password is wrong,
	// the derived key will be wrong, and authentication will fail.
	plaintext, err := gcmDecrypt(envelope.Crypto.CipherText, derivedKey, nil)
	if err != nil {
		return hsss.Part{}, ErrInvalidPassword
	}
	defer utils.Zeroize(plaintext)

	return hsss.DecodePart(plaintext)
}

func gcmEncrypt(plaintext, key, additionalData []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Never use more than 2^32 random nonces with a given key because of the risk of a repeat.
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend the nonce to the ciphertext.
	return aesgcm.Seal(nonce, nonce, plaintext, additionalData), nil
}

func gcmDecrypt(cipherText, key, additionalData []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := aesgcm.NonceSize()
	if len(cipherText) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, actualCipherText := cipherText[:nonceSize], cipherText[nonceSize:]
	return aesgcm.Open(nil, nonce, actualCipherText, additionalData)
}
