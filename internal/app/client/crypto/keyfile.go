package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLength    = 16

	keyVersion   = 1
	keyAlgorithm = "Argon2id"

	keyFilePermissions = 0600
)

var (
	ErrWrongPassphrase = errors.New("неверная парольная фраза")
	ErrEmptyPassphrase = errors.New("парольная фраза не может быть пустой")
)

// KeyHeader хранится в файле ключа. Сам ключ в файл не пишется.
type KeyHeader struct {
	Version   int       `json:"version"`
	Algorithm string    `json:"algorithm"`
	Salt      string    `json:"salt"`
	KeyHash   string    `json:"key_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// Sealer шифрует мастер-ключи профилей ключом, выведенным из парольной фразы
type Sealer struct {
	key    []byte
	header KeyHeader
}

// OpenSealer выводит ключ из парольной фразы. Если файла ключа еще нет,
// он создается с новой солью; иначе парольная фраза сверяется с хэшем.
func OpenSealer(keyPath, passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	data, err := os.ReadFile(keyPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return createSealer(keyPath, passphrase)
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения файла ключа: %w", err)
	}

	var header KeyHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("ошибка декодирования файла ключа: %w", err)
	}
	if header.Algorithm != keyAlgorithm {
		return nil, fmt.Errorf("неподдерживаемый алгоритм: %s", header.Algorithm)
	}

	salt, err := hex.DecodeString(header.Salt)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования соли: %w", err)
	}

	key := deriveKey(passphrase, salt)
	if subtle.ConstantTimeCompare([]byte(hashKey(key)), []byte(header.KeyHash)) != 1 {
		clearMemory(key)
		return nil, ErrWrongPassphrase
	}

	return &Sealer{key: key, header: header}, nil
}

func createSealer(keyPath, passphrase string) (*Sealer, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("ошибка генерации соли: %w", err)
	}

	key := deriveKey(passphrase, salt)
	header := KeyHeader{
		Version:   keyVersion,
		Algorithm: keyAlgorithm,
		Salt:      hex.EncodeToString(salt),
		KeyHash:   hashKey(key),
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории: %w", err)
	}
	if err := os.WriteFile(keyPath, data, keyFilePermissions); err != nil {
		return nil, fmt.Errorf("ошибка записи файла: %w", err)
	}

	return &Sealer{key: key, header: header}, nil
}

// Seal шифрует строку и возвращает hex(nonce||ciphertext)
func (s *Sealer) Seal(plaintext string) (string, error) {
	ciphertext, err := encryptWithKey(s.key, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ciphertext), nil
}

// Open расшифровывает значение, полученное из Seal
func (s *Sealer) Open(sealed string) (string, error) {
	ciphertext, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования hex: %w", err)
	}
	plaintext, err := decryptWithKey(s.key, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Close затирает ключ в памяти
func (s *Sealer) Close() {
	clearMemory(s.key)
	s.key = nil
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func hashKey(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}

func clearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// encryptWithKey шифрует данные с использованием AES-GCM
func encryptWithKey(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decryptWithKey расшифровывает данные с использованием AES-GCM
func decryptWithKey(key, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("шифротекст слишком короткий")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("ключ не загружен")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}
	return gcm, nil
}
