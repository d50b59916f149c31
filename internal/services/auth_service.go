package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour

	tokenSubject            = "owner"
	temporaryPasswordLength = 12
)

var (
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrPasswordNotConfigured     = errors.New("password not configured")
	ErrPasswordAlreadyConfigured = errors.New("password already configured")
	ErrInvalidToken              = errors.New("invalid token")
)

// TokenClaims binds a token to the password hash it was issued under, so
// changing the password revokes older tokens.
type TokenClaims struct {
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token              string    `json:"token"`
	ExpiresAt          time.Time `json:"expires_at"`
	MustChangePassword bool      `json:"must_change_password"`
}

type AuthService struct {
	accounts  AccountRepository
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(accounts AccountRepository, secretKey []byte, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		accounts:  accounts,
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (service *AuthService) PasswordConfigured() (bool, error) {
	account, found, err := service.accounts.Find()
	if err != nil {
		return false, err
	}
	return found && strings.TrimSpace(account.PasswordHash) != "", nil
}

// Setup stores the first password. It fails once a password exists.
func (service *AuthService) Setup(password string) error {
	configured, err := service.PasswordConfigured()
	if err != nil {
		return err
	}
	if configured {
		return ErrPasswordAlreadyConfigured
	}
	return service.SetPassword(password)
}

// SetPassword replaces the password unconditionally and clears the
// must-change flag.
func (service *AuthService) SetPassword(password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	return service.storePassword(password, false)
}

// ResetPassword stores a random temporary password that must be changed on
// the next login and returns it.
func (service *AuthService) ResetPassword() (string, error) {
	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	if err := service.storePassword(temporaryPassword, true); err != nil {
		return "", err
	}
	return temporaryPassword, nil
}

func (service *AuthService) storePassword(password string, mustChange bool) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account, _, err := service.accounts.Find()
	if err != nil {
		return err
	}
	account.PasswordHash = string(passwordHash)
	account.MustChangePassword = mustChange
	if err := service.accounts.Save(&account); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// ChangePassword verifies currentPassword before storing newPassword.
func (service *AuthService) ChangePassword(currentPassword string, newPassword string) error {
	account, found, err := service.accounts.Find()
	if err != nil {
		return err
	}
	if !found || strings.TrimSpace(account.PasswordHash) == "" {
		return ErrPasswordNotConfigured
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	return service.SetPassword(newPassword)
}

func (service *AuthService) Login(password string) (LoginResult, error) {
	account, found, err := service.accounts.Find()
	if err != nil {
		return LoginResult{}, err
	}
	if !found || strings.TrimSpace(account.PasswordHash) == "" {
		return LoginResult{}, ErrPasswordNotConfigured
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := service.now()
	expiresAt := now.Add(service.tokenTTL)
	claims := TokenClaims{
		PasswordState: passwordStateFingerprint(account.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tokenSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResult{
		Token:              token,
		ExpiresAt:          expiresAt.UTC(),
		MustChangePassword: account.MustChangePassword,
	}, nil
}

// ParseToken verifies signature, expiry and password state of rawToken.
func (service *AuthService) ParseToken(rawToken string) (models.Account, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return models.Account{}, ErrInvalidToken
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secretKey, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject != tokenSubject {
		return models.Account{}, ErrInvalidToken
	}

	account, found, err := service.accounts.Find()
	if err != nil {
		return models.Account{}, err
	}
	if !found {
		return models.Account{}, ErrInvalidToken
	}
	expected := passwordStateFingerprint(account.PasswordHash)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(claims.PasswordState)) != 1 {
		return models.Account{}, ErrInvalidToken
	}
	return account, nil
}

func passwordStateFingerprint(passwordHash string) string {
	digest := sha256.Sum256([]byte(passwordHash))
	return base64.RawURLEncoding.EncodeToString(digest[:12])
}
