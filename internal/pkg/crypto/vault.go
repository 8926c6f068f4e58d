package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKey        = errors.New("加密密钥无效，需要32字节")
	ErrDecryptFailed     = errors.New("解密失败，密文损坏或密钥不匹配")
	ErrCiphertextInvalid = errors.New("密文格式无效")
)

// Vault 对机器人 token 做静态加密。
// 随机 nonce + AEAD 认证，错误密钥解密必然报错而不是返回乱码。
type Vault struct {
	key []byte
}

// NewVault 从 hex 或 base64 字符串加载32字节密钥
func NewVault(keyStr string) (*Vault, error) {
	key, err := decodeKey(keyStr)
	if err != nil {
		return nil, err
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return &Vault{key: key}, nil
}

func decodeKey(keyStr string) ([]byte, error) {
	if b, err := hex.DecodeString(keyStr); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(keyStr); err == nil {
		return b, nil
	}
	if b, err := base64.URLEncoding.DecodeString(keyStr); err == nil {
		return b, nil
	}
	return nil, ErrInvalidKey
}

// Encrypt 加密并返回 base64(nonce || ciphertext)
func (v *Vault) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密，认证失败返回 ErrDecryptFailed
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCiphertextInvalid
	}

	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrCiphertextInvalid
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
