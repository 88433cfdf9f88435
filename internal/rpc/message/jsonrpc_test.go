package message

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"pr/list","params":{}}`)

	req, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Method != "pr/list" {
		t.Errorf("Method = %q", req.Method)
	}
	if req.IsNotification() {
		t.Error("request with ID should not be a notification")
	}
	if !req.ID.IsNumber() || req.ID.String() != "1" {
		t.Errorf("ID = %v", req.ID)
	}
}

func TestParseRequest_Notification(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","method":"status/get"}`)

	req, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if !req.IsNotification() {
		t.Error("request without ID should be a notification")
	}
}

func TestParseRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad json", `{not json`},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"x"}`},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRequest([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestID_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   *ID
		want string
	}{
		{"string", StringID("abc"), `"abc"`},
		{"number", NumberID(42), `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal() = %s, want %s", out, tt.want)
			}

			var back ID
			if err := json.Unmarshal(out, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if back.String() != tt.id.String() {
				t.Errorf("round trip = %s, want %s", back.String(), tt.id.String())
			}
		})
	}
}

func TestResponse_ErrorSerialization(t *testing.T) {
	payload := json.RawMessage(`{"message":"Not Found","status":404}`)
	resp := NewErrorResponse(StringID("9"), ErrForgeRejected(404, "Not Found", payload))

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	back, err := ParseResponse(out)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if !back.IsError() {
		t.Fatal("expected an error response")
	}
	if back.Error.Code != ForgeRejected {
		t.Errorf("Code = %d, want %d", back.Error.Code, ForgeRejected)
	}
	if string(back.Error.Data) != string(payload) {
		t.Errorf("Data = %s, want %s", back.Error.Data, payload)
	}
}

func TestErrorCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ParseError, "ParseError"},
		{MethodNotFound, "MethodNotFound"},
		{ForgeRejected, "ForgeRejected"},
		{GitOperationFailed, "GitOperationFailed"},
		{PickNotFound, "PickNotFound"},
		{-1, "Unknown"},
	}

	for _, tt := range tests {
		if got := ErrorCodeName(tt.code); got != tt.want {
			t.Errorf("ErrorCodeName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
