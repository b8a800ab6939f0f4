package fetch

import (
	"context"
	"io"
	"net/http"
	"testing"
)

func TestRespondJSON_EmptySuccessBody(t *testing.T) {
	got, err := RespondJSON(context.Background(), NewResponse(http.StatusNoContent, nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty body, got %v", got)
	}
}

func TestRespondJSON_InvalidBody(t *testing.T) {
	_, err := RespondJSON(context.Background(), NewResponse(http.StatusOK, nil, []byte("{")))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if IsFetchError(err) {
		t.Error("decode failure should not be a FetchError")
	}
}

func TestRespondJSONAs(t *testing.T) {
	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	got, err := RespondJSONAs[[]user]()(context.Background(),
		NewResponse(http.StatusOK, nil, []byte(`[{"id":1,"name":"a"}]`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	users, ok := got.([]user)
	if !ok || len(users) != 1 || users[0].Name != "a" {
		t.Errorf("unexpected result %#v", got)
	}

	_, err = RespondJSONAs[user]()(context.Background(), NewResponse(http.StatusInternalServerError, nil, nil))
	if fe, ok := AsFetchError(err); !ok || fe.Message != "Internal Server Error" {
		t.Errorf("expected Internal Server Error FetchError, got %v", err)
	}
}

func TestRespondText(t *testing.T) {
	got, err := RespondText(context.Background(), NewResponse(http.StatusOK, nil, []byte("hello")))
	if err != nil || got != "hello" {
		t.Errorf("expected hello, got %v (%v)", got, err)
	}
	if _, err := RespondText(context.Background(), NewResponse(http.StatusBadGateway, nil, []byte("x"))); !IsFetchError(err) {
		t.Errorf("expected FetchError, got %v", err)
	}
}

func TestRespondHeader(t *testing.T) {
	h := make(http.Header)
	h.Set("X-Total-Count", "7")
	h.Add("X-Tag", "a")
	h.Add("X-Tag", "b")
	res := NewResponse(http.StatusOK, h, nil)

	if got, _ := RespondHeader("x-total-count", HeaderInt)(context.Background(), res); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
	if got, _ := RespondHeader("X-Tag", nil)(context.Background(), res); got != "a, b" {
		t.Errorf("expected joined values, got %v", got)
	}
	if got, _ := RespondHeader("Missing", HeaderInt)(context.Background(), res); got != 0 {
		t.Errorf("expected 0 for missing header, got %v", got)
	}
	if got, _ := RespondHeader("Missing", nil)(context.Background(), res); got != "" {
		t.Errorf("expected empty string for missing header, got %v", got)
	}
}

func TestHeaderInt_Invalid(t *testing.T) {
	if _, err := HeaderInt("abc"); err == nil {
		t.Error("expected parse error")
	}
	if v, err := HeaderInt(" 12 "); err != nil || v != 12 {
		t.Errorf("expected 12, got %v (%v)", v, err)
	}
}

func TestResponse_BodyIsRereadable(t *testing.T) {
	res := NewResponse(http.StatusOK, nil, []byte("payload"))
	for i := 0; i < 3; i++ {
		b, err := io.ReadAll(res.Body())
		if err != nil || string(b) != "payload" {
			t.Fatalf("read %d: expected payload, got %q (%v)", i, b, err)
		}
	}
	copyBytes := res.Bytes()
	copyBytes[0] = 'X'
	if res.Text() != "payload" {
		t.Error("expected Bytes to return a copy")
	}
}

func TestStatusReason(t *testing.T) {
	tests := []struct {
		code   int
		status string
		want   string
	}{
		{404, "404 Not Found", "Not Found"},
		{404, "", "Not Found"},
		{599, "599 Network Connect Timeout", "Network Connect Timeout"},
		{599, "", "599"},
	}
	for _, tc := range tests {
		if got := statusReason(tc.code, tc.status); got != tc.want {
			t.Errorf("statusReason(%d, %q): expected %q, got %q", tc.code, tc.status, tc.want, got)
		}
	}
}
