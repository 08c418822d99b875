package service

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"time"

	"formshub_backend/internals/helpers/ttlstore"
)

/* ==========================
   OTP (reset password via email)
========================== */

const (
	otpTTL         = 120 * time.Second
	otpCooldown    = 60 * time.Second
	otpMaxAttempts = 5
)

type otpState struct {
	Code     string
	Attempts int
	Verified bool
}

// OTPSender mengirim kode ke user; default hanya log (dev/test).
type OTPSender func(email, code string) error

// OTPService: state OTP hidup di TTL store in-memory, bukan di DB
type OTPService struct {
	Store *ttlstore.Store
	Send  OTPSender
}

func NewOTPService(store *ttlstore.Store) *OTPService {
	return &OTPService{
		Store: store,
		Send: func(email, code string) error {
			log.Printf("[OTP] kode untuk %s: %s", email, code)
			return nil
		},
	}
}

func otpKey(email string) string      { return "otp:" + email }
func cooldownKey(email string) string { return "otp-cooldown:" + email }

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Request membuat & mengirim OTP baru. Ditolak selama cooldown aktif.
func (s *OTPService) Request(email string) error {
	if s.Store.Exists(cooldownKey(email)) {
		return fmt.Errorf("Tunggu %d detik sebelum meminta OTP baru", int(otpCooldown.Seconds()))
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("Gagal membuat kode OTP")
	}

	s.Store.Set(otpKey(email), &otpState{Code: code}, otpTTL)
	s.Store.Set(cooldownKey(email), struct{}{}, otpCooldown)

	if err := s.Send(email, code); err != nil {
		s.Store.Delete(otpKey(email))
		return fmt.Errorf("Gagal mengirim kode OTP")
	}
	return nil
}

// Verify mencocokkan kode; salah 5x = state hangus
func (s *OTPService) Verify(email, code string) error {
	v, ok := s.Store.Get(otpKey(email))
	if !ok {
		return fmt.Errorf("Kode OTP kadaluarsa atau belum diminta")
	}
	state, ok := v.(*otpState)
	if !ok {
		s.Store.Delete(otpKey(email))
		return fmt.Errorf("Kode OTP kadaluarsa atau belum diminta")
	}

	state.Attempts++
	if state.Attempts > otpMaxAttempts {
		s.Store.Delete(otpKey(email))
		return fmt.Errorf("Terlalu banyak percobaan, minta kode baru")
	}
	if subtle.ConstantTimeCompare([]byte(state.Code), []byte(code)) != 1 {
		return fmt.Errorf("Kode OTP salah")
	}

	state.Verified = true
	return nil
}

// Consume: sekali pakai setelah verified (dipanggil saat reset password)
func (s *OTPService) Consume(email string) bool {
	v, ok := s.Store.Get(otpKey(email))
	if !ok {
		return false
	}
	state, ok := v.(*otpState)
	if !ok || !state.Verified {
		return false
	}
	s.Store.Delete(otpKey(email))
	s.Store.Delete(cooldownKey(email))
	return true
}
