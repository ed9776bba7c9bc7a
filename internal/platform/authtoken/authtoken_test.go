package authtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueAndParse(t *testing.T) {
	codec, err := NewCodec("s3cret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	userID := uuid.New()
	tok, err := codec.Issue(userID, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p, err := codec.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.ID != userID || p.Role != "admin" {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestParseRejects(t *testing.T) {
	codec, _ := NewCodec("s3cret", time.Hour)
	other, _ := NewCodec("other", time.Hour)
	foreign, _ := other.Issue(uuid.New(), "")

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("s3cret"))

	notUUID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString([]byte("s3cret"))

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":  "not-a-jwt",
		"foreign":  foreign,
		"expired":  expired,
		"not_uuid": notUUID,
		"none_alg": unsigned,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := codec.Parse(tok); err == nil {
				t.Fatalf("expected %s token to be rejected", name)
			}
		})
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec("  ", time.Hour); err != ErrMissingSecret {
		t.Fatalf("want ErrMissingSecret, got %v", err)
	}
}

func TestDefaultRole(t *testing.T) {
	codec, _ := NewCodec("s3cret", time.Hour)
	tok, _ := codec.Issue(uuid.New(), "")
	p, err := codec.Parse(tok)
	if err != nil || p.Role != "student" {
		t.Fatalf("unexpected principal %+v %v", p, err)
	}
}
