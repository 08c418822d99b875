package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formshub_backend/internals/helpers/ttlstore"
)

func newOTPForTest(now *time.Time) (*OTPService, *string) {
	svc := NewOTPService(ttlstore.NewWithClock(func() time.Time { return *now }))
	var sent string
	svc.Send = func(email, code string) error {
		sent = code
		return nil
	}
	return svc, &sent
}

func TestOTPRequestVerifyConsume(t *testing.T) {
	now := time.Now()
	svc, sent := newOTPForTest(&now)

	require.NoError(t, svc.Request("a@b.com"))
	require.Len(t, *sent, 6)

	require.NoError(t, svc.Verify("a@b.com", *sent))
	assert.True(t, svc.Consume("a@b.com"))

	// sekali pakai: consume kedua gagal
	assert.False(t, svc.Consume("a@b.com"))
}

func TestOTPConsumeWithoutVerify(t *testing.T) {
	now := time.Now()
	svc, _ := newOTPForTest(&now)

	require.NoError(t, svc.Request("a@b.com"))
	assert.False(t, svc.Consume("a@b.com"))
}

func TestOTPCooldown(t *testing.T) {
	now := time.Now()
	svc, _ := newOTPForTest(&now)

	require.NoError(t, svc.Request("a@b.com"))

	err := svc.Request("a@b.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tunggu")

	// lewat cooldown boleh minta lagi
	now = now.Add(61 * time.Second)
	assert.NoError(t, svc.Request("a@b.com"))
}

func TestOTPExpiry(t *testing.T) {
	now := time.Now()
	svc, sent := newOTPForTest(&now)

	require.NoError(t, svc.Request("a@b.com"))
	code := *sent

	now = now.Add(121 * time.Second)
	err := svc.Verify("a@b.com", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kadaluarsa")
}

func TestOTPWrongCodeAndMaxAttempts(t *testing.T) {
	now := time.Now()
	svc, sent := newOTPForTest(&now)

	require.NoError(t, svc.Request("a@b.com"))

	// kode salah tidak menghanguskan state sampai batas percobaan
	for i := 0; i < otpMaxAttempts; i++ {
		err := svc.Verify("a@b.com", "000000x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "salah")
	}

	// percobaan ke-6 hangus
	err := svc.Verify("a@b.com", *sent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Terlalu banyak percobaan")

	// state sudah dihapus
	err = svc.Verify("a@b.com", *sent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kadaluarsa")
}
