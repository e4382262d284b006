package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := NewConfigMissing()
	if !strings.HasPrefix(err.Error(), "CONFIG: ") {
		t.Errorf("Error() = %q, want CONFIG prefix", err.Error())
	}
}

func TestNewNetwork_WithStatus(t *testing.T) {
	err := NewNetwork(503, nil)
	if err.Code != ErrNetwork {
		t.Errorf("Code = %q, want NETWORK", err.Code)
	}
	if got := err.Details["status_code"]; got != 503 {
		t.Errorf("status_code detail = %v, want 503", got)
	}
	if !strings.Contains(err.Message, "503") {
		t.Errorf("Message = %q, should carry the numeric code", err.Message)
	}
}

func TestNewNetwork_TransportFailure(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewNetwork(0, cause)
	if err.Code != ErrNetwork {
		t.Errorf("Code = %q, want NETWORK", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("wrapped transport error should unwrap to cause")
	}
}

func TestNewParse_PropagatesCause(t *testing.T) {
	cause := fmt.Errorf("record on line 3: wrong number of fields")
	err := NewParse(cause)
	if err.Code != ErrParse {
		t.Errorf("Code = %q, want PARSE", err.Code)
	}
	if !strings.Contains(err.Message, "wrong number of fields") {
		t.Errorf("Message = %q, parser error should pass through verbatim", err.Message)
	}
}

func TestIs(t *testing.T) {
	if !Is(NewConfigMissing(), ErrConfig) {
		t.Errorf("Is(ConfigMissing, CONFIG) = false")
	}
	if Is(NewConfigMissing(), ErrParse) {
		t.Errorf("Is(ConfigMissing, PARSE) = true")
	}
	if Is(fmt.Errorf("plain"), ErrInternal) {
		t.Errorf("Is(plain error, INTERNAL) = true")
	}
}
